package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implementación de PartyRepository (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

const partyColumns = `id, shop_id, kind, customer_type, name, phone, address,
	opening_balance, opening_payments, total_billed, total_paid,
	is_deleted, deleted_at, created_at, updated_at`

// Create persiste una nueva parte.
func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ShopID, p.Kind, p.CustomerType, p.Name, p.Phone, p.Address,
		p.OpeningBalance, p.OpeningPayments, p.TotalBilled, p.TotalPaid,
		p.IsDeleted, p.DeletedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID obtiene una parte de la tienda; (nil, nil) si no existe.
func (r *PartyRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Party, error) {
	return r.get(ctx, `SELECT `+partyColumns+` FROM parties WHERE shop_id = $1 AND id = $2`, shopID, id)
}

// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *PartyRepo) GetForUpdate(ctx context.Context, shopID, id string) (*entity.Party, error) {
	return r.get(ctx, `SELECT `+partyColumns+` FROM parties WHERE shop_id = $1 AND id = $2 FOR UPDATE`, shopID, id)
}

func (r *PartyRepo) get(ctx context.Context, query, shopID, id string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(ctx, query, shopID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// List lista partes con filtros de estado, saldo y búsqueda; devuelve también el total.
func (r *PartyRepo) List(ctx context.Context, f repository.PartyListFilter) ([]*entity.Party, int, error) {
	w := partyWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM parties`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count parties: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	query := `SELECT ` + partyColumns + ` FROM parties` + w.String() + partyOrder(f.SortBy) + limit
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func partyWhere(f repository.PartyListFilter) *where {
	w := &where{}
	w.add("shop_id = ?", f.ShopID)
	w.add("kind = ?", f.Kind)
	if f.CustomerType != "" {
		w.add("customer_type = ?", f.CustomerType)
	}
	switch f.Status {
	case repository.PartyStatusDeleted:
		w.raw("is_deleted")
	case repository.PartyStatusAll:
	default:
		w.raw("NOT is_deleted")
	}
	switch f.DuesFilter {
	case repository.DuesDue:
		w.raw("total_billed > total_paid")
	case repository.DuesAdvance:
		w.raw("total_billed < total_paid")
	case repository.DuesClear:
		w.raw("total_billed = total_paid")
	}
	if f.Search != "" {
		w.add(`(name ILIKE ? OR phone ILIKE ?)`, likePattern(f.Search))
	}
	return w
}

func partyOrder(sortBy string) string {
	switch sortBy {
	case repository.SortDueDesc:
		return " ORDER BY (total_billed - total_paid) DESC, name"
	case repository.SortDueAsc:
		return " ORDER BY (total_billed - total_paid) ASC, name"
	case repository.SortRecent:
		return " ORDER BY created_at DESC"
	default:
		return " ORDER BY name"
	}
}

// Update actualiza los datos de contacto; los acumulados cambian solo con AddTotals.
func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	query := `
		UPDATE parties SET name = $3, phone = $4, address = $5, customer_type = $6, updated_at = $7
		WHERE shop_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, p.ShopID, p.ID, p.Name, p.Phone, p.Address, p.CustomerType, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddTotals suma deltas a total_billed y total_paid de forma atómica.
func (r *PartyRepo) AddTotals(ctx context.Context, shopID, id string, billed, paid decimal.Decimal) error {
	query := `
		UPDATE parties SET total_billed = total_billed + $3, total_paid = total_paid + $4, updated_at = now()
		WHERE shop_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, shopID, id, billed, paid)
	if err != nil {
		return fmt.Errorf("update party totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el soft delete.
func (r *PartyRepo) SetDeleted(ctx context.Context, shopID, id string, deleted bool) error {
	query := `
		UPDATE parties
		SET is_deleted = $3, deleted_at = CASE WHEN $3 THEN now() ELSE NULL END, updated_at = now()
		WHERE shop_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, shopID, id, deleted)
	if err != nil {
		return fmt.Errorf("set party deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Totals agrega las partes activas del tipo (y opcionalmente del tipo de cliente).
func (r *PartyRepo) Totals(ctx context.Context, shopID string, kind entity.PartyKind, customerType string) (*repository.PartyTotals, error) {
	w := &where{}
	w.add("shop_id = ?", shopID)
	w.add("kind = ?", kind)
	w.raw("NOT is_deleted")
	if customerType != "" {
		w.add("customer_type = ?", customerType)
	}
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(total_billed), 0),
			COALESCE(SUM(total_paid), 0),
			COALESCE(SUM(GREATEST(total_billed - total_paid, 0)), 0),
			COALESCE(SUM(GREATEST(total_paid - total_billed, 0)), 0),
			COUNT(*) FILTER (WHERE total_billed > total_paid),
			COUNT(*) FILTER (WHERE total_billed < total_paid),
			COALESCE(SUM(GREATEST(opening_balance - opening_payments, 0)), 0)
		FROM parties` + w.String()
	var t repository.PartyTotals
	err := r.q.QueryRow(ctx, query, w.args...).Scan(
		&t.Count, &t.TotalBilled, &t.TotalPaid, &t.TotalDue, &t.TotalAdvance,
		&t.WithDue, &t.WithAdvance, &t.OpeningDueSum,
	)
	if err != nil {
		return nil, fmt.Errorf("party totals: %w", err)
	}
	return &t, nil
}

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(
		&p.ID, &p.ShopID, &p.Kind, &p.CustomerType, &p.Name, &p.Phone, &p.Address,
		&p.OpeningBalance, &p.OpeningPayments, &p.TotalBilled, &p.TotalPaid,
		&p.IsDeleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
