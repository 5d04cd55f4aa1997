package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/report"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func bill(num string, amount, paid float64) *entity.Bill {
	return &entity.Bill{
		BillNumber:  num,
		TotalAmount: d(amount),
		PaidAmount:  d(paid),
		CreatedAt:   time.Date(2025, 10, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestInferOpening_Reconcilia(t *testing.T) {
	cases := []struct{ total, paid, a, p float64 }{
		{1000, 600, 700, 500},
		{5000, 0, 1200, 0},
		{300, 300, 100, 50},
		{2500.75, 1000.25, 500.5, 0.25},
	}
	for _, c := range cases {
		op, ok := report.InferOpening(d(c.total), d(c.paid), d(c.a), d(c.p), false)
		require.True(t, ok)
		assert.True(t, op.Amount.Add(d(c.a)).Equal(d(c.total)), "amount + a == T")
		assert.True(t, op.Paid.Add(d(c.p)).Equal(d(c.paid)), "paid + p == P")
		assert.True(t, op.Due.Equal(op.Amount.Sub(op.Paid)))
	}
}

func TestInferOpening_Suprimida(t *testing.T) {
	_, ok := report.InferOpening(d(1000), d(500), d(100), d(0), true)
	assert.False(t, ok, "búsqueda libre no infiere apertura")

	_, ok = report.InferOpening(d(1000), d(500), d(1000), d(500), false)
	assert.False(t, ok, "ambos ~0")

	_, ok = report.InferOpening(d(1000.004), d(500), d(1000), d(499.995), false)
	assert.False(t, ok, "por debajo de la tolerancia 0.01")

	op, ok := report.InferOpening(d(100), d(500), d(300), d(100), false)
	require.True(t, ok)
	assert.True(t, op.Amount.IsZero(), "nunca negativo")
	assert.True(t, d(400).Equal(op.Paid))
	assert.True(t, d(-400).Equal(op.Due))
}

func TestBuildBillReport_ConAperturaYTotal(t *testing.T) {
	party := &entity.Party{
		Name:           "Sharma Traders",
		Kind:           entity.PartyWholesaler,
		OpeningBalance: d(500),
		TotalBilled:    d(2000),
		TotalPaid:      d(900),
	}
	bills := []*entity.Bill{bill("PUR-000001", 1000, 500), bill("PUR-000002", 500, 300)}

	r := report.BuildBillReport(report.Meta{ShopName: "Gupta Kirana"}, party, bills)

	require.Len(t, r.Rows, 4)
	assert.Equal(t, "Purchase Bill Report", r.Title)
	assert.Equal(t, report.RowOpening, r.Rows[0].Kind)
	assert.True(t, d(500).Equal(r.Rows[0].Amount))
	assert.True(t, d(100).Equal(r.Rows[0].Paid))
	assert.True(t, d(400).Equal(r.Rows[0].Due))

	total := r.Total()
	assert.True(t, r.IsTotalRow(len(r.Rows)-1))
	assert.False(t, r.IsTotalRow(0))
	assert.Equal(t, report.GrandTotalLabel, total.Description)
	assert.True(t, party.TotalBilled.Equal(total.Amount), "el total coincide con pantalla")
	assert.True(t, party.TotalPaid.Equal(total.Paid))
	assert.True(t, party.OutstandingDue().Equal(total.Due))
}

func TestBuildBillReport_BusquedaSinApertura(t *testing.T) {
	party := &entity.Party{Kind: entity.PartyCustomer, TotalBilled: d(2000), TotalPaid: d(900)}
	r := report.BuildBillReport(report.Meta{Search: "INV-0001"}, party, []*entity.Bill{bill("INV-000001", 100, 100)})

	require.Len(t, r.Rows, 2)
	assert.Nil(t, r.Opening)
	assert.Equal(t, report.RowLine, r.Rows[0].Kind)
	assert.True(t, d(100).Equal(r.Total().Amount))
	assert.True(t, r.Total().Due.IsZero())
}

func TestBuildBillReport_VacioSoloTotal(t *testing.T) {
	r := report.BuildBillReport(report.Meta{}, nil, nil)
	require.Len(t, r.Rows, 1)
	assert.True(t, r.IsTotalRow(0))
	assert.True(t, r.Total().Amount.IsZero())
}

func TestBuildPaymentReport_SubtotalesPorMetodo(t *testing.T) {
	payments := []*entity.Payment{
		{Amount: d(100), PaymentMethod: entity.PaymentCash},
		{Amount: d(250), PaymentMethod: entity.PaymentUPI, Notes: "GPay"},
		{Amount: d(50), PaymentMethod: entity.PaymentCash},
	}
	r := report.BuildPaymentReport(report.Meta{}, nil, payments)

	require.Len(t, r.Rows, 4)
	assert.True(t, d(400).Equal(r.Total().Amount))
	require.Len(t, r.MethodTotals, 2)
	assert.Equal(t, "cash", r.MethodTotals[0].Method)
	assert.Equal(t, 2, r.MethodTotals[0].Count)
	assert.True(t, d(150).Equal(r.MethodTotals[0].Amount))
	assert.Equal(t, "GPay", r.Rows[1].Description)
}

func TestBuildBillReport_ExportCortadoSinApertura(t *testing.T) {
	party := &entity.Party{Kind: entity.PartyCustomer, TotalBilled: d(300), TotalPaid: d(0)}
	bills := []*entity.Bill{bill("INV-000003", 100, 0), bill("INV-000002", 100, 0)}

	r := report.BuildBillReport(report.Meta{MatchedRows: 3}, party, bills)

	assert.True(t, r.Truncated())
	assert.Equal(t, 2, r.ShownRows)
	assert.Equal(t, 3, r.MatchedRows)
	assert.Nil(t, r.Opening, "las facturas fuera del export no son saldo traído")
	require.Len(t, r.Rows, 3)
	assert.Equal(t, report.RowLine, r.Rows[0].Kind)
	assert.True(t, d(200).Equal(r.Total().Amount))
}

func TestBuildPaymentReport_ConteoDeFilas(t *testing.T) {
	payments := []*entity.Payment{{Amount: d(10), PaymentMethod: entity.PaymentCash}}

	r := report.BuildPaymentReport(report.Meta{}, nil, payments)
	assert.False(t, r.Truncated())
	assert.Equal(t, 1, r.MatchedRows)

	r = report.BuildPaymentReport(report.Meta{MatchedRows: 5}, nil, payments)
	assert.True(t, r.Truncated())
}
