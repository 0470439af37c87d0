package entity

import "github.com/shopspring/decimal"

// LineItem una línea de la factura. El orden de inserción es el orden de
// impresión y se conserva durante la paginación.
type LineItem struct {
	ID          string
	Description string
	Qty         decimal.Decimal
	Price       decimal.Decimal
}

// Amount importe de la línea (qty × price).
func (it LineItem) Amount() decimal.Decimal {
	return it.Qty.Mul(it.Price)
}

// InvoiceMeta metadatos de la factura. Number deriva el nombre del archivo
// exportado; Currency controla el formato monetario.
type InvoiceMeta struct {
	Number   string
	Date     string // fecha ISO (YYYY-MM-DD)
	Due      string // opcional
	Currency string // código tipo ISO 4217
}

// Agency datos del emisor.
type Agency struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Website string
}

// Client datos del receptor. Normalmente se rellena aplicando un preset.
type Client struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Invoice snapshot completo del borrador: es la entrada tanto de la vista
// previa como del pipeline de exportación.
type Invoice struct {
	Agency      Agency
	Client      Client
	Meta        InvoiceMeta
	Notes       string
	Items       []LineItem
	TaxPct      decimal.Decimal
	Discount    decimal.Decimal
	Theme       ThemeMode
	LogoDataURL string // imagen inline (data URL); vacío = placeholder
}

// Totals valores derivados; se recalculan siempre, nunca se almacenan.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Totals calcula subtotal = Σ(qty×price), tax = subtotal × taxPct/100 y
// total = max(0, subtotal + tax − discount). El total nunca es negativo
// aunque el descuento supere subtotal+tax.
func (inv Invoice) Totals() Totals {
	subtotal := decimal.Zero
	for _, it := range inv.Items {
		subtotal = subtotal.Add(it.Amount())
	}
	tax := subtotal.Mul(inv.TaxPct).Div(hundred)
	total := subtotal.Add(tax).Sub(inv.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{Subtotal: subtotal, Tax: tax, Total: total}
}
