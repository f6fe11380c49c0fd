package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/injapanfood/pos-api/internal/domain/repository"
)

type fakeTxRepo struct {
	mu       sync.Mutex
	txs      []entity.Transaction
	seq      int
	err      error // returned by every call when set
	creates  int
	hideRead bool // GetByID returns nil, nil
}

func (r *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.err != nil {
		return r.err
	}
	r.seq++
	tx.ID = fmt.Sprintf("65f0c2a1b4e9d3%010x", r.seq)
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *fakeTxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.hideRead {
		return nil, nil
	}
	for _, tx := range r.txs {
		if tx.ID == id {
			out := tx
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeTxRepo) List(_ context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	all := r.newestFirst()
	total := int64(len(all))
	start := min(params.Pagination.Offset(), len(all))
	end := min(start+params.Pagination.PerPage, len(all))
	return all[start:end], total, nil
}

func (r *fakeTxRepo) ListWithCursor(_ context.Context, params *repository.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	all := r.newestFirst()
	return all[:min(params.Cursor.Limit+1, len(all))], nil
}

func (r *fakeTxRepo) ListRange(_ context.Context, start, end time.Time) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Transaction
	for _, tx := range r.txs {
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) ListRecent(_ context.Context, limit int) ([]entity.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	all := r.newestFirst()
	return all[:min(limit, len(all))], nil
}

func (r *fakeTxRepo) newestFirst() []entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.txs)
	slices.SortFunc(out, func(a, b entity.Transaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

type fakeOrderRepo struct {
	orders []entity.Order
	err    error

	// when release is set ListRange signals entered and waits for release
	entered chan struct{}
	release chan struct{}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.orders = append(r.orders, *o)
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.orders, int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) ListWithCursor(_ context.Context, params *repository.OrderCursorFilterParams) ([]entity.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.orders[:min(params.Cursor.Limit+1, len(r.orders))], nil
}

func (r *fakeOrderRepo) ListRange(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	if r.release != nil {
		select {
		case r.entered <- struct{}{}:
		default:
		}
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]entity.Product
	err      error
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		_ = r.Create(ctx, &products[i])
	}
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Product
	for _, p := range r.products {
		if params.ActiveOnly && !p.Active {
			continue
		}
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b entity.Product) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *fakeProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeMonthlyRepo struct {
	reports map[int]entity.MonthlyReport
	saves   int
}

func newFakeMonthlyRepo() *fakeMonthlyRepo {
	return &fakeMonthlyRepo{reports: make(map[int]entity.MonthlyReport)}
}

func (r *fakeMonthlyRepo) Save(_ context.Context, report *entity.MonthlyReport) error {
	r.saves++
	r.reports[report.Year] = *report
	return nil
}

func (r *fakeMonthlyRepo) GetByYear(_ context.Context, year int) (*entity.MonthlyReport, error) {
	rep, ok := r.reports[year]
	if !ok {
		return nil, nil
	}
	return &rep, nil
}

type fakeFeed struct {
	mu        sync.Mutex
	published []event.TransactionCompleted
	err       error
}

func (f *fakeFeed) Publish(_ context.Context, evt event.TransactionCompleted) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, evt)
	return nil
}

func (f *fakeFeed) Subscribe(context.Context) (<-chan event.TransactionCompleted, func(), error) {
	ch := make(chan event.TransactionCompleted)
	return ch, func() {}, nil
}

func (f *fakeFeed) Close() error { return nil }

func ramen() *entity.Product {
	return &entity.Product{ID: "p-ramen", Name: "Tonkotsu Ramen", Category: "Ramen", Price: 1200, Active: true}
}

func gyoza() *entity.Product {
	return &entity.Product{ID: "p-gyoza", Name: "Gyoza (6 pcs)", Category: "Sides", Price: 500, Active: true}
}

func tokyo() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

var testCashier = entity.Cashier{ID: "cashier-1", Name: "Aiko", Roles: []string{"cashier"}}
