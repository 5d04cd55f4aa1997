package billing_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/report"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
)

// memStore repositorios en memoria compartidos por los fakes.
type memStore struct {
	mu       sync.Mutex
	shops    map[string]*entity.Shop
	parties  map[string]*entity.Party
	bills    []*entity.Bill
	payments []*entity.Payment
	totals   int // llamadas a Totals
}

func newMemStore() *memStore {
	return &memStore{shops: map[string]*entity.Shop{}, parties: map[string]*entity.Party{}}
}

func (m *memStore) addShop(id, name string) *entity.Shop {
	s := &entity.Shop{ID: id, Name: name, Timezone: "Asia/Kolkata"}
	m.shops[id] = s
	return s
}

func (m *memStore) addParty(p *entity.Party) *entity.Party {
	m.parties[p.ID] = p
	return p
}

// ── party ─────────────────────────────────────────────────────────────────────

type memParties struct{ m *memStore }

func (r memParties) Create(_ context.Context, p *entity.Party) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *p
	r.m.parties[p.ID] = &cp
	return nil
}

func (r memParties) GetByID(_ context.Context, shopID, id string) (*entity.Party, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.parties[id]
	if !ok || p.ShopID != shopID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memParties) GetForUpdate(ctx context.Context, shopID, id string) (*entity.Party, error) {
	return r.GetByID(ctx, shopID, id)
}

func (r memParties) List(_ context.Context, f repository.PartyListFilter) ([]*entity.Party, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Party
	for _, p := range r.m.parties {
		if p.ShopID == f.ShopID && p.Kind == f.Kind {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return out[f.Offset:end], total, nil
}

func (r memParties) Update(_ context.Context, p *entity.Party) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *p
	r.m.parties[p.ID] = &cp
	return nil
}

func (r memParties) AddTotals(_ context.Context, _, id string, billed, paid decimal.Decimal) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p := r.m.parties[id]
	p.TotalBilled = p.TotalBilled.Add(billed)
	p.TotalPaid = p.TotalPaid.Add(paid)
	return nil
}

func (r memParties) SetDeleted(_ context.Context, _, id string, deleted bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p := r.m.parties[id]
	p.IsDeleted = deleted
	if deleted {
		now := time.Now()
		p.DeletedAt = &now
	} else {
		p.DeletedAt = nil
	}
	return nil
}

func (r memParties) Totals(ctx context.Context, shopID string, kind entity.PartyKind, _ string) (*repository.PartyTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.totals++
	t := &repository.PartyTotals{}
	for _, p := range r.m.parties {
		if p.ShopID != shopID || p.Kind != kind || p.IsDeleted {
			continue
		}
		t.Count++
		t.TotalBilled = t.TotalBilled.Add(p.TotalBilled)
		t.TotalPaid = t.TotalPaid.Add(p.TotalPaid)
		due := p.OutstandingDue()
		switch {
		case due.IsPositive():
			t.TotalDue = t.TotalDue.Add(due)
			t.WithDue++
		case due.IsNegative():
			t.TotalAdvance = t.TotalAdvance.Add(due.Abs())
			t.WithAdvance++
		}
	}
	return t, nil
}

// ── bill ──────────────────────────────────────────────────────────────────────

type memBills struct{ m *memStore }

func (r memBills) Create(_ context.Context, b *entity.Bill) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.bills = append(r.m.bills, b)
	return nil
}

func (r memBills) GetByID(_ context.Context, shopID, id string) (*entity.Bill, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bills {
		if b.ID == id && b.ShopID == shopID {
			return b, nil
		}
	}
	return nil, nil
}

func (r memBills) List(_ context.Context, f repository.BillListFilter) ([]*entity.Bill, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Bill
	for _, b := range r.m.bills {
		if b.ShopID != f.ShopID || (f.PartyID != "" && b.PartyID != f.PartyID) {
			continue
		}
		if f.BillType != "" && b.BillType != f.BillType {
			continue
		}
		if f.From != nil && b.CreatedAt.Before(*f.From) || f.To != nil && !b.CreatedAt.Before(*f.To) {
			continue
		}
		out = append(out, b)
	}
	return window(out, f.Offset, f.Limit), len(out), nil
}

// ── payment ───────────────────────────────────────────────────────────────────

type memPayments struct{ m *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.payments = append(r.m.payments, p)
	return nil
}

func (r memPayments) ListByParty(_ context.Context, shopID, partyID string) ([]*entity.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.m.payments {
		if p.ShopID == shopID && p.PartyID == partyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPayments) List(_ context.Context, f repository.PaymentListFilter) ([]*entity.Payment, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.m.payments {
		if p.ShopID != f.ShopID || (f.PartyID != "" && p.PartyID != f.PartyID) {
			continue
		}
		if f.PaymentMethod != "" && p.PaymentMethod != f.PaymentMethod {
			continue
		}
		out = append(out, p)
	}
	return window(out, f.Offset, f.Limit), len(out), nil
}

// ── shop ──────────────────────────────────────────────────────────────────────

type memShops struct{ m *memStore }

func (r memShops) Create(_ context.Context, s *entity.Shop) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.shops[s.ID] = s
	return nil
}

func (r memShops) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.shops[id], nil
}

func (r memShops) List(context.Context, int, int) ([]*entity.Shop, int, error) { return nil, 0, nil }

func (r memShops) NextBillNumber(_ context.Context, shopID string, t entity.BillType) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s := r.m.shops[shopID]
	if t == entity.BillPurchase {
		s.PurSeq++
		return s.PurSeq, nil
	}
	s.BillSeq++
	return s.BillSeq, nil
}

// memTx ejecuta fn sin transacción real: los fakes ya son atómicos por llamada.
type memTx struct{ m *memStore }

func (t memTx) RunLedger(_ context.Context, fn func(repository.PartyRepository, repository.BillRepository, repository.PaymentRepository, repository.ShopRepository) error) error {
	return fn(memParties{t.m}, memBills{t.m}, memPayments{t.m}, memShops{t.m})
}

// memCache StatsCache en memoria que registra invalidaciones.
type memCache struct {
	mu          sync.Mutex
	entries     map[string]*dto.PartyStatsResponse
	invalidated int
}

func newMemCache() *memCache { return &memCache{entries: map[string]*dto.PartyStatsResponse{}} }

func (c *memCache) Get(_ context.Context, key string) (*dto.PartyStatsResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[key]
	return s, ok, nil
}

func (c *memCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *memCache) Set(_ context.Context, key string, s *dto.PartyStatsResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = s
	return nil
}

func (c *memCache) InvalidateShop(context.Context, string, entity.PartyKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.entries = map[string]*dto.PartyStatsResponse{}
	return nil
}

// flakyRenderer falla las primeras failures llamadas.
type flakyRenderer struct {
	mu       sync.Mutex
	failures int
	calls    int
	last     *report.Report
}

func (f *flakyRenderer) RenderReport(_ context.Context, r *report.Report) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = r
	if f.calls <= f.failures {
		return nil, errRender
	}
	return []byte("%PDF-fake"), nil
}

func (f *flakyRenderer) RenderBillInvoice(_ context.Context, _ *entity.Shop, _ *entity.Party, _ *entity.Bill) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errRender
	}
	return []byte("%PDF-invoice"), nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
