package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// MemoryLedger libro contable en memoria, para desarrollo sin base de datos.
// Implementa port.AccountingGateway y port.SaleLogRepository
type MemoryLedger struct {
	mu      sync.RWMutex
	sales   map[uuid.UUID]*entity.SaleLog
	created map[uuid.UUID]time.Time
	now     func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		sales:   make(map[uuid.UUID]*entity.SaleLog),
		created: make(map[uuid.UUID]time.Time),
		now:     time.Now,
	}
}

var (
	_ port.AccountingGateway = (*MemoryLedger)(nil)
	_ port.SaleLogRepository = (*MemoryLedger)(nil)
)

// PostAccounting guarda una copia de la venta; reenviarla no la duplica
func (l *MemoryLedger) PostAccounting(ctx context.Context, sale *entity.SaleLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.sales[sale.SaleID]; ok {
		return nil
	}
	cp := *sale
	cp.Items = append([]entity.LineItem(nil), sale.Items...)
	cp.EnteredIDs = append([]int(nil), sale.EnteredIDs...)
	cp.State = entity.SaleStateSynced
	now := l.now()
	cp.EndedAt = &now
	l.sales[sale.SaleID] = &cp
	l.created[sale.SaleID] = now
	return nil
}

// ListBetween retorna las ventas de [from, to), la más reciente primero
func (l *MemoryLedger) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleLog, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*entity.SaleLog
	for id, sale := range l.sales {
		createdAt := l.created[id]
		if createdAt.Before(from) || !createdAt.Before(to) {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return l.created[out[i].SaleID].After(l.created[out[j].SaleID])
	})
	return out, nil
}

// Summarize agrega las ventas de [from, to)
func (l *MemoryLedger) Summarize(ctx context.Context, from, to time.Time) (*port.DailySummary, error) {
	sales, err := l.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &port.DailySummary{
		GrossTotal:     entity.Zero(),
		TotalDiscounts: entity.Zero(),
		NetTotal:       entity.Zero(),
	}
	for _, sale := range sales {
		summary.SalesCount++
		summary.GrossTotal = summary.GrossTotal.Add(sale.RunningTotal)
		summary.TotalDiscounts = summary.TotalDiscounts.Add(sale.DiscountAmount)
		summary.NetTotal = summary.NetTotal.Add(sale.PayableAmount)

		createdAt := *sale.EndedAt
		if summary.FirstSaleAt == nil || createdAt.Before(*summary.FirstSaleAt) {
			t := createdAt
			summary.FirstSaleAt = &t
		}
		if summary.LastSaleAt == nil || createdAt.After(*summary.LastSaleAt) {
			t := createdAt
			summary.LastSaleAt = &t
		}
	}
	return summary, nil
}
