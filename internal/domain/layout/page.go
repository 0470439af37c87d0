package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// contentPad relleno interior de la página.
const contentPad = 32.0

// Role papel de color dentro de la paleta activa; el rasterizador lo resuelve
// al hex concreto del tema.
type Role int

const (
	RoleText Role = iota
	RoleSubtext
	RoleLine
	RoleLineSoft
)

// Text un tramo de texto posicionado. Y es el borde superior de la caja de
// línea; si Right es true, X es el borde derecho del texto.
type Text struct {
	S     string
	X, Y  float64
	Size  float64
	Bold  bool
	Role  Role
	Right bool
}

// Rule línea horizontal (separadores de tabla y de totales).
type Rule struct {
	X1, X2, Y float64
	Role      Role
}

// Box rectángulo con borde (chips, placeholder del logo). Fill pinta el
// fondo de chip del tema activo.
type Box struct {
	X, Y, W, H float64
	Border     Role
	Dashed     bool
	Fill       bool
}

// Logo referencia al logo inline; se dibuja con alto fijo y ancho
// proporcional, alineado a RightX por la derecha.
type Logo struct {
	DataURL string
	RightX  float64
	Y, H    float64
}

// BlockKind clase de bloque vertical, usada por la medición.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockChips
	BlockParties
	BlockTableHead
	BlockTableRow
	BlockTotals
	BlockFooter
)

// Block franja vertical con posición y alto calculados en construcción.
type Block struct {
	Kind BlockKind
	Y, H float64
}

// Page fragmento de documento de una página, listo para rasterizar. Se crea
// por exportación y se descarta tras el rasterizado; no tiene identidad
// persistente.
type Page struct {
	Theme  entity.ThemeMode
	Items  []entity.LineItem
	Last   bool
	Blocks []Block
	Texts  []Text
	Rules  []Rule
	Boxes  []Box
	Logo   *Logo
}

// TextMeasurer métricas de texto renderizado. La implementación real usa
// fuentes opentype; los tests inyectan una de ancho fijo.
type TextMeasurer interface {
	Width(s string, size float64, bold bool) float64
}

// MoneyFormatter formatea un importe en la moneda activa.
type MoneyFormatter func(d decimal.Decimal) string

// Builder construye páginas de exportación. El mismo builder produce la
// página sintética de medición y las páginas reales.
type Builder struct {
	tm  TextMeasurer
	fmt MoneyFormatter
}

// NewBuilder construye el builder con las métricas de texto y el formateador
// monetario a usar.
func NewBuilder(tm TextMeasurer, money MoneyFormatter) *Builder {
	return &Builder{tm: tm, fmt: money}
}

func lineHeight(size float64) float64 {
	return math.Round(size * 1.2)
}

// Build construye la página para un trozo de ítems. Los totales se calculan
// siempre sobre la lista completa del snapshot; sólo se adjuntan al layout
// cuando last es true.
func (b *Builder) Build(inv entity.Invoice, pageItems []entity.LineItem, last bool) *Page {
	p := &Page{Theme: inv.Theme, Items: pageItems, Last: last}
	contentW := PageWidth - 2*contentPad
	rightEdge := PageWidth - contentPad

	y := contentPad

	// Cabecera: título/número/fecha a la izquierda, logo a la derecha.
	headerTop := y
	leftY := y
	p.text("Invoice", contentPad, leftY, 24, true, RoleText)
	leftY += lineHeight(24)
	for _, line := range headerMetaLines(inv.Meta) {
		leftY += 4
		p.text(line, contentPad, leftY, 12, false, RoleSubtext)
		leftY += lineHeight(12)
	}
	const logoH = 48.0
	if inv.LogoDataURL != "" {
		p.Logo = &Logo{DataURL: inv.LogoDataURL, RightX: rightEdge, Y: y, H: logoH}
	} else {
		p.Boxes = append(p.Boxes, Box{X: rightEdge - logoH, Y: y, W: logoH, H: logoH, Border: RoleLine, Dashed: true})
		w := b.tm.Width("LOGO", 10, false)
		p.text("LOGO", rightEdge-logoH/2-w/2, y+logoH/2-lineHeight(10)/2, 10, false, RoleSubtext)
	}
	headerH := math.Max(leftY-headerTop, logoH)
	p.block(BlockHeader, headerTop, headerH)
	y = headerTop + headerH

	// Chips de proceso (con salto de línea si no caben).
	y += 16
	chipsTop := y
	chipH := lineHeight(11) + 12
	x := contentPad
	for _, chip := range entity.ProcessChips {
		w := b.tm.Width(chip, 11, false) + 20
		if x > contentPad && x+w > rightEdge {
			x = contentPad
			y += chipH + 8
		}
		p.Boxes = append(p.Boxes, Box{X: x, Y: y, W: w, H: chipH, Border: RoleLine, Fill: true})
		p.text(chip, x+10, y+6, 11, false, RoleText)
		x += w + 8
	}
	p.block(BlockChips, chipsTop, y+chipH-chipsTop)
	y += chipH

	// From / Bill To en dos columnas.
	y += 24
	partiesTop := y
	colW := (contentW - 16) / 2
	billX := contentPad + colW + 16

	fromH := p.party(b, contentPad, y, "From", partyLines(
		inv.Agency.Name,
		inv.Agency.Address,
		contactLine(inv.Agency.Email, inv.Agency.Phone),
		inv.Agency.Website,
	))
	billH := p.party(b, billX, y, "Bill To", partyLines(
		orDefault(inv.Client.Name, "Client Name"),
		orDefault(inv.Client.Address, "Address"),
		contactLine(orDefault(inv.Client.Email, "email@example.com"), inv.Client.Phone),
	))
	partiesH := math.Max(fromH, billH)
	p.block(BlockParties, partiesTop, partiesH)
	y = partiesTop + partiesH

	// Tabla de ítems. La banda de cabecera se repite en todas las páginas.
	y += 24
	descX := contentPad
	descW := contentW*0.55 - 8
	qtyRight := contentPad + contentW*0.65
	unitRight := contentPad + contentW*0.80
	amountRight := rightEdge

	headTop := y
	headH := 8 + lineHeight(13) + 8 + 1
	p.text("DESCRIPTION", descX, y+8, 13, false, RoleSubtext)
	p.textRight("QTY", qtyRight, y+8, 13, false, RoleSubtext)
	p.textRight("UNIT", unitRight, y+8, 13, false, RoleSubtext)
	p.textRight("AMOUNT", amountRight, y+8, 13, false, RoleSubtext)
	p.rule(contentPad, rightEdge, y+headH-1, RoleLine)
	p.block(BlockTableHead, headTop, headH)
	y += headH

	for _, it := range pageItems {
		rowTop := y
		lines := wrapText(b.tm, orDefault(it.Description, "Item"), 13, descW, false)
		rowH := 8 + float64(len(lines))*lineHeight(13) + 8 + 1
		for i, line := range lines {
			p.text(line, descX, y+8+float64(i)*lineHeight(13), 13, false, RoleText)
		}
		p.textRight(it.Qty.String(), qtyRight, y+8, 13, false, RoleSubtext)
		p.textRight(b.fmt(it.Price), unitRight, y+8, 13, false, RoleSubtext)
		p.textRight(b.fmt(it.Amount()), amountRight, y+8, 13, true, RoleText)
		p.rule(contentPad, rightEdge, y+rowH-1, RoleLineSoft)
		p.block(BlockTableRow, rowTop, rowH)
		y += rowH
	}

	if last {
		y = b.appendTotals(p, inv, y, colW, rightEdge)
		b.appendFooter(p, inv, y, rightEdge)
	}

	return p
}

// appendTotals bloque de dos columnas notas/totales, sólo última página.
func (b *Builder) appendTotals(p *Page, inv entity.Invoice, y, colW, rightEdge float64) float64 {
	y += 24
	top := y

	// Columna de notas.
	p.text("Notes", contentPad, y, 12, true, RoleSubtext)
	notesY := y + lineHeight(12) + 8
	notesLines := wrapText(b.tm, inv.Notes, 12, colW, false)
	notesLH := math.Round(12 * 1.6)
	for i, line := range notesLines {
		p.text(line, contentPad, notesY+float64(i)*notesLH, 12, false, RoleSubtext)
	}
	notesH := notesY + float64(len(notesLines))*notesLH - top

	// Columna de totales, alineada al borde derecho.
	totalsW := math.Min(260, colW)
	totalsX := rightEdge - totalsW
	t := inv.Totals()
	ty := y
	row := func(label, value string, bold bool) {
		ty += 6
		p.Texts = append(p.Texts, Text{S: label, X: totalsX, Y: ty, Size: 13, Bold: bold, Role: RoleSubtext})
		p.Texts = append(p.Texts, Text{S: value, X: rightEdge, Y: ty, Size: 13, Bold: bold, Role: RoleText, Right: true})
		ty += lineHeight(13)
	}
	row("Subtotal", b.fmt(t.Subtotal), false)
	row(fmt.Sprintf("Tax (%s%%)", inv.TaxPct.String()), b.fmt(t.Tax), false)
	row("Discount", "- "+b.fmt(inv.Discount), false)
	ty += 8
	p.rule(totalsX, rightEdge, ty, RoleLine)
	ty += 8
	row("Total", b.fmt(t.Total), true)
	totalsH := ty - top

	h := math.Max(notesH, totalsH)
	p.block(BlockTotals, top, h)
	return top + h
}

// appendFooter pie bancario + agradecimiento, sólo última página.
func (b *Builder) appendFooter(p *Page, inv entity.Invoice, y, rightEdge float64) float64 {
	y += 24
	top := y
	bank := entity.DefaultBankAccount
	left := []string{
		"Bank Name: " + bank.BankName,
		"Account Name: " + bank.AccountName,
		"Account Number: " + bank.AccountNumber,
		"Branch: " + bank.Branch,
		"SWIFT/BIC: " + bank.SwiftBIC,
	}
	lh := lineHeight(11)
	for i, line := range left {
		p.text(line, contentPad, y+float64(i)*lh, 11, false, RoleSubtext)
	}
	right := []string{
		"Thank you for your business.",
		"Questions? " + inv.Agency.Email,
	}
	for i, line := range right {
		p.textRight(line, rightEdge, y+float64(i)*lh, 11, false, RoleSubtext)
	}
	h := float64(len(left)) * lh
	p.block(BlockFooter, top, h)
	return top + h
}

// party pinta una columna From/Bill To y devuelve su alto.
func (p *Page) party(b *Builder, x, y float64, heading string, lines []string) float64 {
	top := y
	p.text(heading, x, y, 12, true, RoleSubtext)
	y += lineHeight(12) + 4
	for i, line := range lines {
		size := 12.0
		bold := false
		role := RoleSubtext
		if i == 0 { // nombre destacado
			size = 14
			bold = true
			role = RoleText
		}
		p.text(line, x, y, size, bold, role)
		y += lineHeight(size)
	}
	return y - top
}

func (p *Page) text(s string, x, y, size float64, bold bool, role Role) {
	p.Texts = append(p.Texts, Text{S: s, X: x, Y: y, Size: size, Bold: bold, Role: role})
}

func (p *Page) textRight(s string, x, y, size float64, bold bool, role Role) {
	p.Texts = append(p.Texts, Text{S: s, X: x, Y: y, Size: size, Bold: bold, Role: role, Right: true})
}

func (p *Page) rule(x1, x2, y float64, role Role) {
	p.Rules = append(p.Rules, Rule{X1: x1, X2: x2, Y: y, Role: role})
}

func (p *Page) block(kind BlockKind, y, h float64) {
	p.Blocks = append(p.Blocks, Block{Kind: kind, Y: y, H: h})
}

func headerMetaLines(meta entity.InvoiceMeta) []string {
	lines := []string{meta.Number, "Date: " + orDefault(meta.Date, "—")}
	if meta.Due != "" {
		lines = append(lines, "Due: "+meta.Due)
	}
	return lines
}

func partyLines(lines ...string) []string {
	return lines
}

func contactLine(email, phone string) string {
	return email + " · " + phone
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// wrapText parte s en líneas que no superen maxW, con corte por palabras.
func wrapText(tm TextMeasurer, s string, size, maxW float64, bold bool) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{s}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if tm.Width(candidate, size, bold) > maxW {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}
