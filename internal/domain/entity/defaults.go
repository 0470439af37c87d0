package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Valores por defecto del borrador (agencia, notas, chips de proceso y cuenta
// bancaria del pie de página).

// DefaultNotes texto de notas inicial.
const DefaultNotes = "Design. Develop. Maintain. Grow. Thank you for choosing Median. Payment is due within 7 days."

// DefaultCurrency moneda inicial del borrador.
const DefaultCurrency = "AED"

// ProcessChips conjunto fijo de chips que se repite en cada página.
var ProcessChips = []string{
	"Plan & Design",
	"Develop & Ship",
	"Maintain & Support",
	"Optimize & Grow",
}

// BankAccount datos bancarios del pie de página (sólo última página).
type BankAccount struct {
	BankName      string
	AccountName   string
	AccountNumber string
	Branch        string
	SwiftBIC      string
}

// DefaultBankAccount cuenta bancaria de la agencia.
var DefaultBankAccount = BankAccount{
	BankName:      "Commercial bank of Ceylon PLC",
	AccountName:   "M M A Alavi",
	AccountNumber: "8265001934",
	Branch:        "Gelioya",
	SwiftBIC:      "CCEYLKLXXXX",
}

// DefaultAgency emisor por defecto.
var DefaultAgency = Agency{
	Name:    "Median Ltd.",
	Email:   "hello@median.ltd",
	Phone:   "+94 777 294 294",
	Address: "Kandy, Sri Lanka",
	Website: "median.ltd",
}

// NewLineItem crea una línea con id recién generado. La cantidad arranca en 1
// y el precio en 0; la descripción queda en blanco hasta que el usuario la
// rellene.
func NewLineItem() LineItem {
	return LineItem{
		ID:  uuid.NewString(),
		Qty: decimal.NewFromInt(1),
	}
}

// NewDraft construye el borrador inicial, equivalente al estado de arranque
// del formulario.
func NewDraft() Invoice {
	first := NewLineItem()
	first.Description = "Design & Prototyping"
	first.Price = decimal.NewFromInt(75000)
	return Invoice{
		Agency: DefaultAgency,
		Meta: InvoiceMeta{
			Number:   "INV-1001",
			Date:     time.Now().Format("2006-01-02"),
			Currency: DefaultCurrency,
		},
		Notes: DefaultNotes,
		Items: []LineItem{first},
		Theme: ThemeDark,
	}
}
