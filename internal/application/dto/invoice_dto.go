package dto

import (
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// ── Líneas ───────────────────────────────────────────────────────────────────

// LineItemDTO línea de la factura con su importe derivado.
type LineItemDTO struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
}

// LineItemPatchRequest cambios parciales; los campos ausentes no se tocan.
type LineItemPatchRequest struct {
	Description *string  `json:"description"`
	Qty         *float64 `json:"qty"`
	Price       *float64 `json:"price"`
}

// ── Secciones del borrador ───────────────────────────────────────────────────

// AgencyRequest datos del emisor.
type AgencyRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
}

// ClientRequest datos del receptor.
type ClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// MetaRequest metadatos de la factura.
type MetaRequest struct {
	Number   string `json:"number"`
	Date     string `json:"date"`
	Due      string `json:"due"`
	Currency string `json:"currency"`
}

// NotesRequest notas del pie del borrador.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// TaxRequest porcentaje de impuesto.
type TaxRequest struct {
	Pct float64 `json:"pct"`
}

// DiscountRequest descuento absoluto.
type DiscountRequest struct {
	Amount float64 `json:"amount"`
}

// ThemeRequest tema de exportación ("light" o "dark").
type ThemeRequest struct {
	Mode string `json:"mode"`
}

// ── Respuestas ───────────────────────────────────────────────────────────────

// TotalsDTO totales derivados.
type TotalsDTO struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// DraftResponse snapshot completo del borrador.
type DraftResponse struct {
	Agency   AgencyRequest `json:"agency"`
	Client   ClientRequest `json:"client"`
	Meta     MetaRequest   `json:"meta"`
	Notes    string        `json:"notes"`
	Items    []LineItemDTO `json:"items"`
	TaxPct   float64       `json:"taxPct"`
	Discount float64       `json:"discount"`
	Theme    string        `json:"theme"`
	HasLogo  bool          `json:"hasLogo"`
	Totals   TotalsDTO     `json:"totals"`
}

// CompanyDTO preset de compañía tal y como lo expone la API.
type CompanyDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Currency string `json:"currency,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Website  string `json:"website,omitempty"`
}

// CompaniesResponse catálogo de presets con su estado de carga.
type CompaniesResponse struct {
	Companies []CompanyDTO `json:"companies"`
	Loading   bool         `json:"loading"`
	Status    string       `json:"status,omitempty"`
}

// ── Mapeos ───────────────────────────────────────────────────────────────────

// FromLineItem convierte la entidad a DTO.
func FromLineItem(it entity.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:          it.ID,
		Description: it.Description,
		Qty:         it.Qty.InexactFloat64(),
		Price:       it.Price.InexactFloat64(),
		Amount:      it.Amount().InexactFloat64(),
	}
}

// FromInvoice convierte el snapshot completo a DTO de respuesta.
func FromInvoice(inv entity.Invoice) DraftResponse {
	items := make([]LineItemDTO, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, FromLineItem(it))
	}
	t := inv.Totals()
	return DraftResponse{
		Agency: AgencyRequest{
			Name:    inv.Agency.Name,
			Email:   inv.Agency.Email,
			Phone:   inv.Agency.Phone,
			Address: inv.Agency.Address,
			Website: inv.Agency.Website,
		},
		Client: ClientRequest{
			Name:    inv.Client.Name,
			Email:   inv.Client.Email,
			Phone:   inv.Client.Phone,
			Address: inv.Client.Address,
		},
		Meta: MetaRequest{
			Number:   inv.Meta.Number,
			Date:     inv.Meta.Date,
			Due:      inv.Meta.Due,
			Currency: inv.Meta.Currency,
		},
		Notes:    inv.Notes,
		Items:    items,
		TaxPct:   inv.TaxPct.InexactFloat64(),
		Discount: inv.Discount.InexactFloat64(),
		Theme:    string(inv.Theme),
		HasLogo:  inv.LogoDataURL != "",
		Totals: TotalsDTO{
			Subtotal: t.Subtotal.InexactFloat64(),
			Tax:      t.Tax.InexactFloat64(),
			Total:    t.Total.InexactFloat64(),
		},
	}
}

// FromCompany convierte un preset a DTO.
func FromCompany(c entity.Company) CompanyDTO {
	return CompanyDTO{
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		Currency: c.Currency,
		Notes:    c.Notes,
		Website:  c.Website,
	}
}

// FromTotals convierte los totales derivados a DTO.
func FromTotals(t entity.Totals) TotalsDTO {
	return TotalsDTO{
		Subtotal: t.Subtotal.InexactFloat64(),
		Tax:      t.Tax.InexactFloat64(),
		Total:    t.Total.InexactFloat64(),
	}
}
