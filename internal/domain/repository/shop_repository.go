package repository

import (
	"context"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Shop, int, error)
	// NextBillNumber incrementa y devuelve el consecutivo del tipo de factura.
	NextBillNumber(ctx context.Context, shopID string, billType entity.BillType) (int64, error)
}
