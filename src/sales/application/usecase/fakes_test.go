package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

type fakeCatalog struct {
	items   map[int]entity.ItemInfo
	failErr error
	calls   int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[int]entity.ItemInfo{
		101: {ItemID: 101, Description: "Milk 1L", UnitPrice: entity.MustAmount("10.00")},
		202: {ItemID: 202, Description: "Bread", UnitPrice: entity.MustAmount("24.90")},
		303: {ItemID: 303, Description: "Coffee", UnitPrice: entity.MustAmount("59.50")},
	}}
}

func (c *fakeCatalog) LookupItem(ctx context.Context, itemID int) (*entity.ItemInfo, error) {
	c.calls++
	if c.failErr != nil {
		return nil, c.failErr
	}
	item, ok := c.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", entity.ErrItemNotFound, itemID)
	}
	return &item, nil
}

type fakeInventory struct {
	fail  error
	posts []*entity.SaleLog
}

func (f *fakeInventory) PostInventory(ctx context.Context, sale *entity.SaleLog) error {
	f.posts = append(f.posts, sale)
	return f.fail
}

type fakeAccounting struct {
	fail  error
	posts []*entity.SaleLog
}

func (f *fakeAccounting) PostAccounting(ctx context.Context, sale *entity.SaleLog) error {
	f.posts = append(f.posts, sale)
	return f.fail
}

type fakeRenderer struct{}

func (fakeRenderer) Render(sale *entity.SaleLog) (string, error) {
	return fmt.Sprintf("%s total=%s paid=%s change=%s", sale.SaleID, sale.PayableAmount, sale.AmountPaid, sale.Change), nil
}

// recordingObserver guarda cada notificación y su orden global
type recordingObserver struct {
	name   string
	order  *[]string
	totals []entity.Amount
	fail   error
}

func (o *recordingObserver) OnRunningTotalChanged(ctx context.Context, saleID uuid.UUID, total entity.Amount) error {
	if o.order != nil {
		*o.order = append(*o.order, o.name)
	}
	o.totals = append(o.totals, total)
	return o.fail
}

type fakeSaleLogRepository struct {
	mu      sync.Mutex
	sales   []*entity.SaleLog
	summary *port.DailySummary
	err     error
	from    time.Time
	to      time.Time
}

func (r *fakeSaleLogRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.from, r.to = from, to
	return r.sales, r.err
}

func (r *fakeSaleLogRepository) Summarize(ctx context.Context, from, to time.Time) (*port.DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.from, r.to = from, to
	return r.summary, r.err
}

var errBoom = errors.New("boom")

type registerFixture struct {
	uc         *RegisterUseCase
	catalog    *fakeCatalog
	inventory  *fakeInventory
	accounting *fakeAccounting
}

func newRegisterFixture(observers ...port.RevenueObserver) *registerFixture {
	f := &registerFixture{
		catalog:    newFakeCatalog(),
		inventory:  &fakeInventory{},
		accounting: &fakeAccounting{},
	}
	f.uc = NewRegisterUseCase("station-1", "", f.catalog, f.inventory, f.accounting, fakeRenderer{}, nil, observers...)
	return f
}
