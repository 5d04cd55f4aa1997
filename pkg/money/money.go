// Package money formatea montos en rupias con la agrupación india (1,00,000).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var india = language.MustParse("en-IN")

// floatLimit por encima de este valor float64 ya no representa los paisa con exactitud.
var floatLimit = decimal.New(1, 13)

// Format monto con places decimales y separadores en-IN, sin símbolo.
// Los negativos llevan el signo delante: "-1,250.00".
func Format(d decimal.Decimal, places int) string {
	r := d.Round(int32(places))
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	if r.GreaterThanOrEqual(floatLimit) {
		return sign + groupIndian(r.StringFixed(int32(places)))
	}
	f, _ := r.Float64()
	// message.Printer no es seguro para uso concurrente.
	p := message.NewPrinter(india)
	return sign + p.Sprint(number.Decimal(f,
		number.MinFractionDigits(places),
		number.MaxFractionDigits(places),
	))
}

// Table monto para celdas de tabla en PDF (dos decimales).
func Table(d decimal.Decimal) string { return Format(d, 2) }

// Display monto redondeado a rupias enteras con prefijo, para encabezados.
func Display(d decimal.Decimal) string {
	s := Format(d, 0)
	if s[0] == '-' {
		return "-Rs. " + s[1:]
	}
	return "Rs. " + s
}

// groupIndian agrupa la parte entera de un número sin signo como 12,34,56,789.
func groupIndian(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	head := intPart
	tail := ""
	if len(intPart) > 3 {
		head, tail = intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	}
	for i, d := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if tail != "" {
		b.WriteByte(',')
		b.WriteString(tail)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
