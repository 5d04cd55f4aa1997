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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, shop_id, party_id, party_name, bill_number, bill_type,
	total_amount, paid_amount, due_amount, payment_method, notes, created_at`

// Create persiste una factura. bill_number es único por tienda.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ShopID, b.PartyID, b.PartyName, b.BillNumber, b.BillType,
		b.TotalAmount, b.PaidAmount, b.DueAmount, b.PaymentMethod, b.Notes, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de la tienda; (nil, nil) si no existe.
func (r *BillRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE shop_id = $1 AND id = $2`, shopID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// List facturas más recientes primero, con el total de filas que cumplen el filtro.
func (r *BillRepo) List(ctx context.Context, f repository.BillListFilter) ([]*entity.Bill, int, error) {
	w := &where{}
	w.add("shop_id = ?", f.ShopID)
	if f.PartyID != "" {
		w.add("party_id = ?", f.PartyID)
	}
	if f.BillType != "" {
		w.add("bill_type = ?", f.BillType)
	}
	if f.Search != "" {
		w.add("(bill_number ILIKE ? OR party_name ILIKE ?)", likePattern(f.Search))
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bills`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bills: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+billColumns+` FROM bills`+w.String()+` ORDER BY created_at DESC, bill_number DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	err := row.Scan(
		&b.ID, &b.ShopID, &b.PartyID, &b.PartyName, &b.BillNumber, &b.BillType,
		&b.TotalAmount, &b.PaidAmount, &b.DueAmount, &b.PaymentMethod, &b.Notes, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
