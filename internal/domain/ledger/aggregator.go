// Package ledger calcula los totales derivados del libro de deudas de una parte
// (cliente o mayorista): deuda de apertura, saldo pendiente, clasificación y tasa de cobro.
//
// Todas las funciones son puras: dependen solo del snapshot recibido.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
)

// Status clasificación del saldo pendiente.
type Status string

const (
	StatusDue     Status = "due"     // la parte le debe a la tienda
	StatusAdvance Status = "advance" // la tienda le debe a la parte (anticipo)
	StatusClear   Status = "clear"   // saldo en cero
)

var hundred = decimal.NewFromInt(100)

// Snapshot valores de una parte necesarios para el cálculo. Los campos ausentes son cero.
type Snapshot struct {
	OpeningBalance  decimal.Decimal
	OpeningPayments decimal.Decimal
	TotalBilled     decimal.Decimal
	TotalPaid       decimal.Decimal
}

// SnapshotOf extrae el snapshot de una parte.
func SnapshotOf(p *entity.Party) Snapshot {
	if p == nil {
		return Snapshot{}
	}
	return Snapshot{
		OpeningBalance:  p.OpeningBalance,
		OpeningPayments: p.OpeningPayments,
		TotalBilled:     p.TotalBilled,
		TotalPaid:       p.TotalPaid,
	}
}

// Summary totales listos para mostrar.
type Summary struct {
	OpeningDue     decimal.Decimal
	Outstanding    decimal.Decimal
	Status         Status
	DisplayAmount  decimal.Decimal // |Outstanding|
	CollectionRate decimal.Decimal // porcentaje entero, sin acotar
}

// OpeningDue deuda previa al sistema; un pago de apertura mayor que la deuda cuenta como saldada.
func OpeningDue(openingBalance, openingPayments decimal.Decimal) decimal.Decimal {
	d := openingBalance.Sub(openingPayments)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Outstanding saldo neto de por vida.
func Outstanding(totalBilled, totalPaid decimal.Decimal) decimal.Decimal {
	return totalBilled.Sub(totalPaid)
}

// Classify decide entre due / advance / clear según el signo del saldo.
func Classify(outstanding decimal.Decimal) Status {
	switch outstanding.Sign() {
	case 1:
		return StatusDue
	case -1:
		return StatusAdvance
	default:
		return StatusClear
	}
}

// CollectionRate porcentaje cobrado sobre lo facturado, redondeado al entero (mitad hacia arriba).
// Con totalBilled <= 0 devuelve 0. No se acota a [0, 100].
func CollectionRate(totalBilled, totalPaid decimal.Decimal) decimal.Decimal {
	if totalBilled.Sign() <= 0 {
		return decimal.Zero
	}
	pct := totalPaid.Mul(hundred).Div(totalBilled)
	return roundHalfUp(pct)
}

// ApplyPayment saldo resultante después de un abono. Puede quedar negativo (anticipo).
func ApplyPayment(outstanding, amount decimal.Decimal) decimal.Decimal {
	return outstanding.Sub(amount)
}

// Summarize calcula todos los derivados de un snapshot.
func Summarize(s Snapshot) Summary {
	out := Outstanding(s.TotalBilled, s.TotalPaid)
	return Summary{
		OpeningDue:     OpeningDue(s.OpeningBalance, s.OpeningPayments),
		Outstanding:    out,
		Status:         Classify(out),
		DisplayAmount:  out.Abs(),
		CollectionRate: CollectionRate(s.TotalBilled, s.TotalPaid),
	}
}

// BillDue saldo de una factura, siempre recalculado como TotalAmount - PaidAmount.
// El valor almacenado en DueAmount no se usa para los totales.
func BillDue(b *entity.Bill) decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// roundHalfUp redondea como Math.round: -2.5 -> -2, 2.5 -> 3.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}
