package usecase

import (
	"context"
	"errors"
	"time"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

// ErrInvalidDate se retorna cuando la fecha no tiene formato YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date format")

// ListSalesUseCase caso de uso para listar las ventas registradas en un día
type ListSalesUseCase struct {
	repo port.SaleLogRepository
}

// NewListSalesUseCase crea una nueva instancia
func NewListSalesUseCase(repo port.SaleLogRepository) *ListSalesUseCase {
	return &ListSalesUseCase{repo: repo}
}

// Execute lista las ventas de la fecha dada
func (uc *ListSalesUseCase) Execute(ctx context.Context, date string) ([]*response.SaleListItem, error) {
	from, to, err := dayRange(date)
	if err != nil {
		return nil, err
	}
	sales, err := uc.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toListItems(sales), nil
}

func toListItems(sales []*entity.SaleLog) []*response.SaleListItem {
	items := make([]*response.SaleListItem, 0, len(sales))
	for _, s := range sales {
		createdAt := s.StartedAt
		if s.EndedAt != nil {
			createdAt = *s.EndedAt
		}
		items = append(items, &response.SaleListItem{
			SaleID:         s.SaleID,
			CustomerID:     s.CustomerID,
			RunningTotal:   s.RunningTotal,
			DiscountAmount: s.DiscountAmount,
			PayableAmount:  s.PayableAmount,
			AmountPaid:     s.AmountPaid,
			Change:         s.Change,
			Currency:       s.Currency,
			TotalItems:     s.TotalItems(),
			CreatedAt:      createdAt.UTC().Truncate(time.Second),
		})
	}
	return items
}
