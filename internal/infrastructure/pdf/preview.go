package pdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// ── Paleta de la vista previa ────────────────────────────────────────────────
// El preview vectorial se imprime sobre papel blanco, así que usa siempre la
// paleta clara con independencia del tema de pantalla.

var (
	previewText    = colorFromHex(entity.ThemeLight.Palette().Text)
	previewSubtext = colorFromHex(entity.ThemeLight.Palette().Subtext)
	previewLine    = colorFromHex(entity.ThemeLight.Palette().Line)
	previewAccent  = colorFromHex(entity.ThemeLight.Palette().AccentA)
)

// ── Renderer ─────────────────────────────────────────────────────────────────

// MarotoPreviewRenderer vista previa continua de la factura con Maroto v2:
// misma estructura visual que la exportación (cabecera, chips, partes, tabla,
// totales, footer) pero con flujo automático, sin paginación manual.
type MarotoPreviewRenderer struct{}

var _ ports.PreviewRenderer = (*MarotoPreviewRenderer)(nil)

// NewMarotoPreviewRenderer construye el renderer.
func NewMarotoPreviewRenderer() *MarotoPreviewRenderer { return &MarotoPreviewRenderer{} }

// RenderPreview genera el PDF de vista previa y devuelve sus bytes.
func (r *MarotoPreviewRenderer) RenderPreview(
	_ context.Context,
	inv entity.Invoice,
	money func(decimal.Decimal) string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(14).WithBottomMargin(14).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.Meta.Number, true).
		WithAuthor(inv.Agency.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: previewAccent, Thickness: 0.6}))
	m.AddRows(chipsRow())
	m.AddRows(partiesRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: previewLine, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, itemRow := range itemRows(inv, money) {
		m.AddRows(itemRow)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: previewLine, Thickness: 0.3}))
	m.AddRows(totalsRow(inv, money))
	m.AddRows(footerRows(inv)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("preview: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + número/fechas (izq) y logo o placeholder (der).
func headerRow(inv entity.Invoice) core.Row {
	left := col.New(8).Add(
		text.New("Invoice", props.Text{
			Style: fontstyle.Bold, Size: 18, Color: previewText, Top: 1,
		}),
		text.New(inv.Meta.Number, props.Text{Size: 9, Top: 10, Color: previewSubtext}),
		text.New("Date: "+orDash(inv.Meta.Date), props.Text{Size: 9, Top: 14, Color: previewSubtext}),
	)
	if inv.Meta.Due != "" {
		left.Add(text.New("Due: "+inv.Meta.Due, props.Text{Size: 9, Top: 18, Color: previewSubtext}))
	}

	right := col.New(4)
	if raw, ext, ok := logoBase64(inv.LogoDataURL); ok {
		right.Add(image.NewFromBytes(raw, ext, props.Rect{Percent: 60, Center: true}))
	} else {
		right.Add(text.New("LOGO", props.Text{
			Size: 8, Align: align.Right, Color: previewSubtext, Top: 8,
		}))
	}

	return row.New(24).Add(left, right)
}

// chipsRow: los chips de proceso como una sola línea separada por puntos.
func chipsRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(strings.Join(entity.ProcessChips, "   ·   "), props.Text{
			Size: 8, Color: previewSubtext, Top: 2,
		}),
	))
}

// partiesRow: bloques From / Bill To.
func partiesRow(inv entity.Invoice) core.Row {
	from := col.New(6).Add(
		text.New("FROM", props.Text{Style: fontstyle.Bold, Size: 8, Color: previewSubtext, Top: 1}),
		text.New(inv.Agency.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		text.New(inv.Agency.Address, props.Text{Size: 8, Top: 10, Color: previewSubtext}),
		text.New(inv.Agency.Email+" · "+inv.Agency.Phone, props.Text{Size: 8, Top: 14, Color: previewSubtext}),
		text.New(inv.Agency.Website, props.Text{Size: 8, Top: 18, Color: previewSubtext}),
	)
	bill := col.New(6).Add(
		text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: previewSubtext, Top: 1}),
		text.New(orDefault(inv.Client.Name, "Client Name"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		text.New(orDefault(inv.Client.Address, "Address"), props.Text{Size: 8, Top: 10, Color: previewSubtext}),
		text.New(orDefault(inv.Client.Email, "email@example.com")+" · "+inv.Client.Phone,
			props.Text{Size: 8, Top: 14, Color: previewSubtext}),
	)
	return row.New(24).Add(from, bill)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: previewSubtext, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("DESCRIPTION", 6, align.Left),
		h("QTY", 1, align.Right),
		h("UNIT", 2, align.Right),
		h("AMOUNT", 3, align.Right),
	)
}

// itemRows: una fila por línea de la factura.
func itemRows(inv entity.Invoice, money func(decimal.Decimal) string) []core.Row {
	rows := make([]core.Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(orDefault(it.Description, "Item"),
				props.Text{Size: 8, Align: align.Left, Top: 1})),
			col.New(1).Add(text.New(it.Qty.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: previewSubtext})),
			col.New(2).Add(text.New(money(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: previewSubtext})),
			col.New(3).Add(text.New(money(it.Amount()),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

// totalsRow: notas a la izquierda, bloque de totales a la derecha.
func totalsRow(inv entity.Invoice, money func(decimal.Decimal) string) core.Row {
	t := inv.Totals()

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Color: previewSubtext, Top: top, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Top: top})
	}

	notes := col.New(6).Add(
		text.New("NOTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: previewSubtext, Top: 1}),
		text.New(inv.Notes, props.Text{Size: 8, Top: 5, Color: previewSubtext}),
	)
	labels := col.New(3).Add(
		label("Subtotal:", 1),
		label(fmt.Sprintf("Tax (%s%%):", inv.TaxPct.String()), 6),
		label("Discount:", 11),
		text.New("Total:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: previewAccent, Top: 17, Right: 2,
		}),
	)
	values := col.New(3).Add(
		value(money(t.Subtotal), 1),
		value(money(t.Tax), 6),
		value("- "+money(inv.Discount), 11),
		text.New(money(t.Total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: previewAccent, Top: 17,
		}),
	)
	return row.New(26).Add(notes, labels, values)
}

// footerRows: banco (izq) + agradecimiento y contacto (der).
func footerRows(inv entity.Invoice) []core.Row {
	bank := entity.DefaultBankAccount
	return []core.Row{
		line.NewRow(3),
		row.New(18).Add(
			col.New(6).Add(
				text.New("Bank Name: "+bank.BankName, props.Text{Size: 7, Top: 1, Color: previewSubtext}),
				text.New("Account Name: "+bank.AccountName, props.Text{Size: 7, Top: 4, Color: previewSubtext}),
				text.New("Account Number: "+bank.AccountNumber, props.Text{Size: 7, Top: 7, Color: previewSubtext}),
				text.New("Branch: "+bank.Branch, props.Text{Size: 7, Top: 10, Color: previewSubtext}),
				text.New("SWIFT/BIC: "+bank.SwiftBIC, props.Text{Size: 7, Top: 13, Color: previewSubtext}),
			),
			col.New(6).Add(
				text.New("Thank you for your business.", props.Text{
					Size: 7, Align: align.Right, Top: 1, Color: previewSubtext,
				}),
				text.New("Questions? "+inv.Agency.Email, props.Text{
					Size: 7, Align: align.Right, Top: 4, Color: previewSubtext,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// logoBase64 extrae el payload base64 y el tipo de imagen de una data URL.
func logoBase64(dataURL string) ([]byte, extension.Type, bool) {
	if dataURL == "" {
		return nil, "", false
	}
	head, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, "", false
	}
	var ext extension.Type
	switch {
	case strings.Contains(head, "image/png"):
		ext = extension.Png
	case strings.Contains(head, "image/jpeg"), strings.Contains(head, "image/jpg"):
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return raw, ext, true
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func orDash(s string) string {
	return orDefault(s, "—")
}

// colorFromHex convierte #RRGGBB a props.Color.
func colorFromHex(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return &props.Color{}
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return &props.Color{}
	}
	return &props.Color{Red: r, Green: g, Blue: b}
}
