package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
)

func toPartyResponse(p *entity.Party) dto.PartyResponse {
	sum := ledger.Summarize(ledger.SnapshotOf(p))
	out := dto.PartyResponse{
		ID:              p.ID,
		Kind:            string(p.Kind),
		CustomerType:    p.CustomerType,
		Name:            p.Name,
		Phone:           p.Phone,
		Address:         p.Address,
		OpeningPayments: p.OpeningPayments,
		TotalPaid:       p.TotalPaid,
		OpeningDue:      sum.OpeningDue,
		OutstandingDue:  sum.Outstanding,
		DueStatus:       string(sum.Status),
		DisplayDue:      sum.DisplayAmount,
		CollectionRate:  sum.CollectionRate,
		IsDeleted:       p.IsDeleted,
		DeletedAt:       p.DeletedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	opening, total := p.OpeningBalance, p.TotalBilled
	if p.Kind == entity.PartyWholesaler {
		out.OpeningPurchases = &opening
		out.TotalPurchased = &total
	} else {
		out.OpeningSales = &opening
		out.TotalSales = &total
	}
	return out
}

func toBillResponse(b *entity.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:            b.ID,
		BillNumber:    b.BillNumber,
		BillType:      string(b.BillType),
		EntityID:      b.PartyID,
		EntityName:    b.PartyName,
		TotalAmount:   b.TotalAmount,
		PaidAmount:    b.PaidAmount,
		DueAmount:     ledger.BillDue(b),
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		EntityID:      p.PartyID,
		EntityType:    string(p.PartyKind),
		EntityName:    p.PartyName,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
