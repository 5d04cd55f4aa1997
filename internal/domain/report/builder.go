// Package report arma el modelo tabular de los reportes imprimibles (facturas o abonos)
// antes de pasarlo al renderizador PDF. Los totales deben coincidir con los de pantalla.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
)

// Kind tipo de reporte.
type Kind string

const (
	KindBills    Kind = "bills"
	KindPayments Kind = "payments"
)

// RowKind tipo de fila de la tabla.
type RowKind int

const (
	RowLine RowKind = iota
	RowOpening
	RowTotal
)

// GrandTotalLabel texto de la fila sintética final.
const GrandTotalLabel = "GRAND TOTAL"

// OpeningLabel texto de la fila de saldo traído (B/F).
const OpeningLabel = "Opening Balance (B/F)"

// openingTolerance por debajo de este valor la fila de apertura no se muestra.
var openingTolerance = decimal.NewFromFloat(0.01)

// Row una fila de la tabla.
type Row struct {
	Kind        RowKind
	Date        time.Time
	Reference   string // número de factura o método de pago
	Description string // nombre de la parte o notas
	Amount      decimal.Decimal
	Paid        decimal.Decimal
	Due         decimal.Decimal
}

// Opening fila inferida de saldo traído.
type Opening struct {
	Amount decimal.Decimal
	Paid   decimal.Decimal
	Due    decimal.Decimal
}

// PartyHeader resumen de la parte impreso en el encabezado.
type PartyHeader struct {
	Name        string
	Phone       string
	Address     string
	Kind        entity.PartyKind
	TotalBilled decimal.Decimal
	TotalPaid   decimal.Decimal
	Summary     ledger.Summary
}

// MethodTotal subtotal por método de pago (reportes de abonos).
type MethodTotal struct {
	Method string
	Count  int
	Amount decimal.Decimal
}

// Report modelo completo. La última fila de Rows es siempre GRAND TOTAL.
type Report struct {
	Kind         Kind
	Title        string
	ShopName     string
	PeriodLabel  string
	SearchLabel  string
	GeneratedAt  time.Time
	Party        *PartyHeader // nil en reportes de varias partes
	Opening      *Opening
	Rows         []Row
	MethodTotals []MethodTotal
	ShownRows    int // filas de detalle impresas
	MatchedRows  int // filas que cumplen el filtro; mayor que ShownRows si el export se cortó
}

// Truncated indica que el export no trae todas las filas del filtro.
func (r *Report) Truncated() bool {
	return r.MatchedRows > r.ShownRows
}

// IsTotalRow indica si la fila i es la de gran total (se imprime en negrita y sombreada).
func (r *Report) IsTotalRow(i int) bool {
	return i == len(r.Rows)-1
}

// Total fila de gran total.
func (r *Report) Total() Row {
	return r.Rows[len(r.Rows)-1]
}

// Meta datos comunes de cualquier reporte.
type Meta struct {
	ShopName    string
	PeriodLabel string
	Search      string // texto libre aplicado; vacío si no hay búsqueda
	GeneratedAt time.Time
	MatchedRows int // total del filtro según el repositorio; 0 = igual a las filas recibidas
}

// InferOpening calcula la fila de saldo traído para un export filtrado:
// initialAmount = max(0, lifetimeTotal - sumAmount), initialPaid = max(0, lifetimePaid - sumPaid).
// ok=false cuando hay búsqueda libre o ambos valores son ~0.
func InferOpening(lifetimeTotal, lifetimePaid, sumAmount, sumPaid decimal.Decimal, isSearch bool) (Opening, bool) {
	if isSearch {
		return Opening{}, false
	}
	amount := clampZero(lifetimeTotal.Sub(sumAmount))
	paid := clampZero(lifetimePaid.Sub(sumPaid))
	if amount.Abs().LessThan(openingTolerance) && paid.Abs().LessThan(openingTolerance) {
		return Opening{}, false
	}
	return Opening{Amount: amount, Paid: paid, Due: amount.Sub(paid)}, true
}

// BuildBillReport arma el reporte de facturas. Si party no es nil se intenta inferir la
// fila de apertura a partir de sus totales de por vida. Con un export cortado no se infiere:
// las facturas que faltan no son saldo traído.
func BuildBillReport(meta Meta, party *entity.Party, bills []*entity.Bill) *Report {
	r := newReport(KindBills, meta)
	r.Title = "Bill Report"
	r.setCounts(meta, len(bills))

	var sumAmount, sumPaid decimal.Decimal
	rows := make([]Row, 0, len(bills)+2)
	for _, b := range bills {
		sumAmount = sumAmount.Add(b.TotalAmount)
		sumPaid = sumPaid.Add(b.PaidAmount)
		rows = append(rows, Row{
			Kind:        RowLine,
			Date:        b.CreatedAt,
			Reference:   b.BillNumber,
			Description: b.PartyName,
			Amount:      b.TotalAmount,
			Paid:        b.PaidAmount,
			Due:         ledger.BillDue(b),
		})
	}

	total := Row{Kind: RowTotal, Description: GrandTotalLabel, Amount: sumAmount, Paid: sumPaid}
	if party != nil {
		r.Party = headerOf(party)
		if party.Kind == entity.PartyWholesaler {
			r.Title = "Purchase Bill Report"
		} else {
			r.Title = "Sale Bill Report"
		}
		if op, ok := InferOpening(party.TotalBilled, party.TotalPaid, sumAmount, sumPaid, r.SearchLabel != ""); ok && !r.Truncated() {
			r.Opening = &op
			rows = append([]Row{{
				Kind:        RowOpening,
				Reference:   "B/F",
				Description: OpeningLabel,
				Amount:      op.Amount,
				Paid:        op.Paid,
				Due:         op.Due,
			}}, rows...)
			total.Amount = total.Amount.Add(op.Amount)
			total.Paid = total.Paid.Add(op.Paid)
		}
	}
	total.Due = total.Amount.Sub(total.Paid)
	r.Rows = append(rows, total)
	return r
}

// BuildPaymentReport arma el reporte de abonos con subtotales por método.
func BuildPaymentReport(meta Meta, party *entity.Party, payments []*entity.Payment) *Report {
	r := newReport(KindPayments, meta)
	r.Title = "Payment History"
	r.setCounts(meta, len(payments))
	if party != nil {
		r.Party = headerOf(party)
	}

	var sum decimal.Decimal
	byMethod := map[string]*MethodTotal{}
	rows := make([]Row, 0, len(payments)+1)
	for _, p := range payments {
		sum = sum.Add(p.Amount)
		mt, ok := byMethod[p.PaymentMethod]
		if !ok {
			mt = &MethodTotal{Method: p.PaymentMethod}
			byMethod[p.PaymentMethod] = mt
		}
		mt.Count++
		mt.Amount = mt.Amount.Add(p.Amount)
		rows = append(rows, Row{
			Kind:        RowLine,
			Date:        p.CreatedAt,
			Reference:   p.PaymentMethod,
			Description: describePayment(p),
			Amount:      p.Amount,
		})
	}
	for _, mt := range byMethod {
		r.MethodTotals = append(r.MethodTotals, *mt)
	}
	sort.Slice(r.MethodTotals, func(i, j int) bool { return r.MethodTotals[i].Method < r.MethodTotals[j].Method })

	r.Rows = append(rows, Row{Kind: RowTotal, Description: GrandTotalLabel, Amount: sum})
	return r
}

func newReport(kind Kind, meta Meta) *Report {
	gen := meta.GeneratedAt
	if gen.IsZero() {
		gen = time.Now()
	}
	return &Report{
		Kind:        kind,
		ShopName:    meta.ShopName,
		PeriodLabel: meta.PeriodLabel,
		SearchLabel: meta.Search,
		GeneratedAt: gen,
	}
}

func (r *Report) setCounts(meta Meta, shown int) {
	r.ShownRows = shown
	r.MatchedRows = shown
	if meta.MatchedRows > shown {
		r.MatchedRows = meta.MatchedRows
	}
}

func headerOf(p *entity.Party) *PartyHeader {
	return &PartyHeader{
		Name:        p.Name,
		Phone:       p.Phone,
		Address:     p.Address,
		Kind:        p.Kind,
		TotalBilled: p.TotalBilled,
		TotalPaid:   p.TotalPaid,
		Summary:     ledger.Summarize(ledger.SnapshotOf(p)),
	}
}

func describePayment(p *entity.Payment) string {
	switch {
	case p.PartyName != "" && p.Notes != "":
		return p.PartyName + " - " + p.Notes
	case p.Notes != "":
		return p.Notes
	default:
		return p.PartyName
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
