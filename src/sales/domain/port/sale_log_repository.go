package port

import (
	"context"
	"sales/src/sales/domain/entity"
	"time"
)

// DailySummary agrega las ventas registradas en un rango [from, to)
type DailySummary struct {
	SalesCount     int
	GrossTotal     entity.Amount
	TotalDiscounts entity.Amount
	NetTotal       entity.Amount
	FirstSaleAt    *time.Time
	LastSaleAt     *time.Time
}

// SaleLogRepository es el lado de lectura del libro contable, usado por los reportes
type SaleLogRepository interface {
	// ListBetween retorna las ventas registradas en [from, to), con sus items
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleLog, error)

	// Summarize agrega totales para [from, to)
	Summarize(ctx context.Context, from, to time.Time) (*DailySummary, error)
}
