package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/report"
	"github.com/jhoicas/Khata-api/internal/infrastructure/pdf"
)

var when = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func party() *entity.Party {
	return &entity.Party{
		ID: "p1", Kind: entity.PartyCustomer, Name: "Ramesh Kumar", Phone: "9876543210",
		OpeningBalance: decimal.NewFromInt(1000), OpeningPayments: decimal.NewFromInt(200),
		TotalBilled: decimal.NewFromInt(1500), TotalPaid: decimal.NewFromInt(300),
	}
}

func TestRenderReport_Facturas(t *testing.T) {
	bills := []*entity.Bill{{
		BillNumber: "INV-000001", BillType: entity.BillSale, PartyName: "Ramesh Kumar",
		TotalAmount: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(100), CreatedAt: when,
	}}
	r := report.BuildBillReport(report.Meta{ShopName: "Sharma Store", PeriodLabel: "2024-03-01 to 2024-03-31", GeneratedAt: when}, party(), bills)

	out, err := pdf.NewMarotoRenderer().RenderReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderReport_Abonos(t *testing.T) {
	payments := []*entity.Payment{
		{PartyName: "Ramesh", Amount: decimal.NewFromInt(100), PaymentMethod: "cash", CreatedAt: when},
		{PartyName: "Ramesh", Amount: decimal.NewFromInt(50), PaymentMethod: "upi", Notes: "parcial", CreatedAt: when},
	}
	r := report.BuildPaymentReport(report.Meta{ShopName: "Sharma Store", Search: "Ramesh", GeneratedAt: when}, nil, payments)

	out, err := pdf.NewMarotoRenderer().RenderReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := report.BuildPaymentReport(report.Meta{}, nil, nil)

	_, err := pdf.NewMarotoRenderer().RenderReport(ctx, r)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderBillInvoice(t *testing.T) {
	shop := &entity.Shop{Name: "Sharma Store", GSTIN: "27AAEPM1234C1Z5"}
	bill := &entity.Bill{
		BillNumber: "PUR-000007", BillType: entity.BillPurchase, PartyName: "Agarwal Traders",
		TotalAmount: decimal.NewFromInt(900), PaidAmount: decimal.NewFromInt(900), PaymentMethod: "online",
		Notes: "Entrega completa", CreatedAt: when,
	}

	out, err := pdf.NewMarotoRenderer().RenderBillInvoice(context.Background(), shop, nil, bill)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderReport_ExportCortado(t *testing.T) {
	bills := []*entity.Bill{{
		BillNumber: "INV-000009", BillType: entity.BillSale, PartyName: "Ramesh Kumar",
		TotalAmount: decimal.NewFromInt(100), CreatedAt: when,
	}}
	r := report.BuildBillReport(report.Meta{ShopName: "Sharma Store", Search: "Ramesh", MatchedRows: 40, GeneratedAt: when}, nil, bills)
	require.True(t, r.Truncated())

	out, err := pdf.NewMarotoRenderer().RenderReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
