package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

// Asegura que ShopRepo implementa repository.ShopRepository.
var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository (usable con pool o tx).
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador de persistencia para tiendas.
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

const shopColumns = `id, name, phone, address, gstin, timezone, bill_seq, pur_seq, created_at, updated_at`

// Create persiste una nueva tienda.
func (r *ShopRepo) Create(ctx context.Context, s *entity.Shop) error {
	query := `
		INSERT INTO shops (` + shopColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Phone, s.Address, s.GSTIN, s.Timezone, s.BillSeq, s.PurSeq, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID; (nil, nil) si no existe.
func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	s, err := scanShop(r.q.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return s, nil
}

// List lista tiendas con paginación.
func (r *ShopRepo) List(ctx context.Context, limit, offset int) ([]*entity.Shop, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM shops`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shops: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// NextBillNumber incrementa el consecutivo del tipo dentro de la transacción en curso.
func (r *ShopRepo) NextBillNumber(ctx context.Context, shopID string, billType entity.BillType) (int64, error) {
	query := `UPDATE shops SET bill_seq = bill_seq + 1, updated_at = now() WHERE id = $1 RETURNING bill_seq`
	if billType == entity.BillPurchase {
		query = `UPDATE shops SET pur_seq = pur_seq + 1, updated_at = now() WHERE id = $1 RETURNING pur_seq`
	}
	var seq int64
	if err := r.q.QueryRow(ctx, query, shopID).Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("next bill number: %w", err)
	}
	return seq, nil
}

func scanShop(row pgx.Row) (*entity.Shop, error) {
	var s entity.Shop
	err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.GSTIN, &s.Timezone, &s.BillSeq, &s.PurSeq, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
