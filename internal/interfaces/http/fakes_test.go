package http_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/report"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

// store repositorios en memoria para levantar la API completa sin base de datos.
type store struct {
	mu       sync.Mutex
	shops    map[string]*entity.Shop
	users    map[string]*entity.User
	parties  map[string]*entity.Party
	bills    []*entity.Bill
	payments []*entity.Payment
}

func newStore() *store {
	return &store{
		shops:   map[string]*entity.Shop{},
		users:   map[string]*entity.User{},
		parties: map[string]*entity.Party{},
	}
}

type shopRepo struct{ s *store }

func (r shopRepo) Create(_ context.Context, sh *entity.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.shops[sh.ID] = sh
	return nil
}

func (r shopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.shops[id], nil
}

func (r shopRepo) List(context.Context, int, int) ([]*entity.Shop, int, error) { return nil, 0, nil }

func (r shopRepo) NextBillNumber(_ context.Context, shopID string, t entity.BillType) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh := r.s.shops[shopID]
	if t == entity.BillPurchase {
		sh.PurSeq++
		return sh.PurSeq, nil
	}
	sh.BillSeq++
	return sh.BillSeq, nil
}

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = u
	return nil
}

func (r userRepo) CreateFirst(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.ShopID == u.ShopID {
			return domain.ErrForbidden
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type partyRepo struct{ s *store }

func (r partyRepo) Create(_ context.Context, p *entity.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.parties[p.ID] = &cp
	return nil
}

func (r partyRepo) GetByID(_ context.Context, shopID, id string) (*entity.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parties[id]
	if !ok || p.ShopID != shopID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r partyRepo) GetForUpdate(ctx context.Context, shopID, id string) (*entity.Party, error) {
	return r.GetByID(ctx, shopID, id)
}

func (r partyRepo) List(_ context.Context, f repository.PartyListFilter) ([]*entity.Party, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Party
	for _, p := range r.s.parties {
		if p.ShopID == f.ShopID && p.Kind == f.Kind {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r partyRepo) Update(_ context.Context, p *entity.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.parties[p.ID] = &cp
	return nil
}

func (r partyRepo) AddTotals(_ context.Context, _, id string, billed, paid decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.parties[id]
	p.TotalBilled = p.TotalBilled.Add(billed)
	p.TotalPaid = p.TotalPaid.Add(paid)
	return nil
}

func (r partyRepo) SetDeleted(_ context.Context, _, id string, deleted bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.parties[id].IsDeleted = deleted
	return nil
}

func (r partyRepo) Totals(_ context.Context, shopID string, kind entity.PartyKind, _ string) (*repository.PartyTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := &repository.PartyTotals{}
	for _, p := range r.s.parties {
		if p.ShopID != shopID || p.Kind != kind || p.IsDeleted {
			continue
		}
		t.Count++
		t.TotalBilled = t.TotalBilled.Add(p.TotalBilled)
		t.TotalPaid = t.TotalPaid.Add(p.TotalPaid)
		if due := p.OutstandingDue(); due.IsPositive() {
			t.TotalDue = t.TotalDue.Add(due)
			t.WithDue++
		}
	}
	return t, nil
}

type billRepo struct{ s *store }

func (r billRepo) Create(_ context.Context, b *entity.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bills = append(r.s.bills, b)
	return nil
}

func (r billRepo) GetByID(_ context.Context, shopID, id string) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bills {
		if b.ID == id && b.ShopID == shopID {
			return b, nil
		}
	}
	return nil, nil
}

func (r billRepo) List(_ context.Context, f repository.BillListFilter) ([]*entity.Bill, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Bill
	for _, b := range r.s.bills {
		if b.ShopID == f.ShopID && (f.PartyID == "" || b.PartyID == f.PartyID) {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

type paymentRepo struct{ s *store }

func (r paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r paymentRepo) ListByParty(_ context.Context, shopID, partyID string) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.ShopID == shopID && p.PartyID == partyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r paymentRepo) List(_ context.Context, f repository.PaymentListFilter) ([]*entity.Payment, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.ShopID == f.ShopID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

type txRunner struct{ s *store }

func (t txRunner) RunLedger(_ context.Context, fn func(repository.PartyRepository, repository.BillRepository, repository.PaymentRepository, repository.ShopRepository) error) error {
	return fn(partyRepo{t.s}, billRepo{t.s}, paymentRepo{t.s}, shopRepo{t.s})
}

var errRender = errors.New("render caído")

// stubRenderer devuelve un PDF fijo o falla siempre.
type stubRenderer struct{ fail bool }

func (r stubRenderer) RenderReport(context.Context, *report.Report) ([]byte, error) {
	if r.fail {
		return nil, errRender
	}
	return []byte("%PDF-report"), nil
}

func (r stubRenderer) RenderBillInvoice(context.Context, *entity.Shop, *entity.Party, *entity.Bill) ([]byte, error) {
	if r.fail {
		return nil, errRender
	}
	return []byte("%PDF-invoice"), nil
}
