package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestOpeningDue_NuncaNegativo(t *testing.T) {
	cases := []struct {
		balance, payments, want float64
	}{
		{500, 200, 300},
		{200, 500, 0},
		{0, 0, 0},
		{-100, 0, 0},
		{0, -50, 50},
		{-100, -300, 200},
	}
	for _, c := range cases {
		got := ledger.OpeningDue(d(c.balance), d(c.payments))
		assert.False(t, got.IsNegative(), "balance=%v payments=%v", c.balance, c.payments)
		assert.True(t, d(c.want).Equal(got), "balance=%v payments=%v got=%s", c.balance, c.payments, got)
	}

	// Valores ausentes equivalen a cero.
	var zero decimal.Decimal
	assert.True(t, ledger.OpeningDue(zero, zero).IsZero())
}

func TestClassify_TresRamas(t *testing.T) {
	assert.Equal(t, ledger.StatusDue, ledger.Classify(d(10)))
	assert.Equal(t, ledger.StatusAdvance, ledger.Classify(d(-0.5)))
	assert.Equal(t, ledger.StatusClear, ledger.Classify(decimal.Zero))
}

func TestCollectionRate(t *testing.T) {
	assert.True(t, ledger.CollectionRate(decimal.Zero, d(100)).IsZero(), "sin ventas la tasa es 0")
	assert.True(t, ledger.CollectionRate(d(-10), d(5)).IsZero())
	assert.Equal(t, "100", ledger.CollectionRate(d(1000), d(1000)).String())
	assert.Equal(t, "33", ledger.CollectionRate(d(3), d(1)).String())
	assert.Equal(t, "67", ledger.CollectionRate(d(3), d(2)).String())
	assert.Equal(t, "3", ledger.CollectionRate(d(1000), d(25)).String(), "2.5 redondea hacia arriba")
	// Sin acotar: pagos mayores a lo facturado o negativos se muestran tal cual.
	assert.Equal(t, "150", ledger.CollectionRate(d(200), d(300)).String())
	assert.Equal(t, "-2", ledger.CollectionRate(d(1000), d(-25)).String(), "-2.5 redondea hacia +inf")
}

func TestSummarize_SaldoCero(t *testing.T) {
	s := ledger.Summarize(ledger.Snapshot{TotalBilled: d(1000), TotalPaid: d(1000)})
	assert.True(t, s.Outstanding.IsZero())
	assert.Equal(t, ledger.StatusClear, s.Status)
	assert.Equal(t, "100", s.CollectionRate.String())
}

func TestSummarize_SinVentas(t *testing.T) {
	s := ledger.Summarize(ledger.Snapshot{})
	assert.True(t, s.CollectionRate.IsZero())
	assert.Equal(t, ledger.StatusClear, s.Status)
}

func TestSummarize_CoincideConOutstandingDeLaParte(t *testing.T) {
	parties := []*entity.Party{
		{TotalBilled: d(1500), TotalPaid: d(500)},
		{TotalBilled: d(100), TotalPaid: d(400)},
		{TotalBilled: d(0), TotalPaid: d(0)},
	}
	for _, p := range parties {
		s := ledger.Summarize(ledger.SnapshotOf(p))
		assert.True(t, p.OutstandingDue().Equal(s.Outstanding))
		assert.Equal(t, ledger.Classify(p.OutstandingDue()), s.Status)
		assert.True(t, s.DisplayAmount.Equal(p.OutstandingDue().Abs()))
	}
}

func TestApplyPayment_ExcedenteEsAnticipo(t *testing.T) {
	newDue := ledger.ApplyPayment(d(200), d(500))
	assert.True(t, d(-300).Equal(newDue))
	assert.Equal(t, ledger.StatusAdvance, ledger.Classify(newDue))
	assert.True(t, d(300).Equal(newDue.Abs()))
}

func TestBillDue_Recalculado(t *testing.T) {
	stale := d(999)
	b := &entity.Bill{TotalAmount: d(1000), PaidAmount: d(400), DueAmount: &stale}
	assert.True(t, d(600).Equal(ledger.BillDue(b)))
	b.DueAmount = nil
	assert.True(t, d(600).Equal(ledger.BillDue(b)))
}
