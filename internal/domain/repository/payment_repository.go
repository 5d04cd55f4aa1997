package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
)

// PaymentListFilter parámetros de GET /payments y /payments/export.
type PaymentListFilter struct {
	ShopID        string
	PartyID       string
	PartyKind     entity.PartyKind
	PaymentMethod string
	Search        string // notas o nombre de la parte
	From          *time.Time
	To            *time.Time // exclusivo
	Limit         int
	Offset        int
}

// PaymentRepository define el puerto de persistencia para abonos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// ListByParty todos los abonos de una parte, más recientes primero.
	ListByParty(ctx context.Context, shopID, partyID string) ([]*entity.Payment, error)
	List(ctx context.Context, f PaymentListFilter) ([]*entity.Payment, int, error)
}
