// Package money formatea importes monetarios con símbolo de moneda, al
// estilo de Intl.NumberFormat con currencyDisplay "narrowSymbol".
package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter función estable de importe → cadena, parametrizada por código de
// moneda. Un código desconocido cae al formato "CODE 1234.56" en vez de
// fallar.
type Formatter struct {
	code    string
	unit    currency.Unit
	known   bool
	printer *message.Printer
}

// New construye el formateador para el código dado (tipo ISO 4217).
func New(code string) *Formatter {
	f := &Formatter{
		code:    strings.ToUpper(strings.TrimSpace(code)),
		printer: message.NewPrinter(language.English),
	}
	if unit, err := currency.ParseISO(f.code); err == nil {
		f.unit = unit
		f.known = true
	}
	return f
}

// Format devuelve el importe con símbolo estrecho y máximo dos decimales.
func (f *Formatter) Format(d decimal.Decimal) string {
	amount, _ := d.Round(2).Float64()
	if !f.known {
		return fmt.Sprintf("%s %s", f.code, f.printer.Sprintf("%.2f", amount))
	}
	return tightenSymbol(f.printer.Sprintf("%v", currency.NarrowSymbol(f.unit.Amount(amount))))
}

// tightenSymbol pega el símbolo al importe ("$ 1,234.50" → "$1,234.50"); los
// símbolos alfanuméricos ("AED 1,234.50") conservan su espacio.
func tightenSymbol(s string) string {
	sym, rest, ok := strings.Cut(s, " ")
	if !ok {
		// algunos locales separan con espacio duro
		sym, rest, ok = strings.Cut(s, " ")
	}
	if !ok {
		return s
	}
	for _, r := range sym {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return s
		}
	}
	return sym + rest
}
