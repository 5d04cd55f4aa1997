package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
)

// BillListFilter parámetros de GET /bills y /bills/export.
type BillListFilter struct {
	ShopID   string
	PartyID  string
	BillType entity.BillType
	Search   string // número de factura o nombre de la parte
	From     *time.Time
	To       *time.Time // exclusivo
	Limit    int
	Offset   int
}

// BillRepository define el puerto de persistencia para facturas.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, shopID, id string) (*entity.Bill, error)
	// List devuelve la página pedida y el total de filas que cumplen el filtro.
	List(ctx context.Context, f BillListFilter) ([]*entity.Bill, int, error)
}
