package usecase

import (
	"context"
	"fmt"
	"time"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/port"
)

// DailyReportUseCase caso de uso para reporte diario de ventas
type DailyReportUseCase struct {
	repo port.SaleLogRepository
}

// NewDailyReportUseCase crea una nueva instancia del caso de uso
func NewDailyReportUseCase(repo port.SaleLogRepository) *DailyReportUseCase {
	return &DailyReportUseCase{repo: repo}
}

// Execute genera el reporte diario para una fecha (YYYY-MM-DD)
func (uc *DailyReportUseCase) Execute(ctx context.Context, date string) (*response.DailyReportResponse, error) {
	from, to, err := dayRange(date)
	if err != nil {
		return nil, err
	}

	summary, err := uc.repo.Summarize(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error summarizing sales: %w", err)
	}

	return &response.DailyReportResponse{
		Date:               date,
		SalesCount:         summary.SalesCount,
		GrossTotal:         summary.GrossTotal,
		TotalDiscounts:     summary.TotalDiscounts,
		NetTotal:           summary.NetTotal,
		FirstTransactionAt: summary.FirstSaleAt,
		LastTransactionAt:  summary.LastSaleAt,
	}, nil
}

// dayRange retorna [from, to) para la fecha; usar >= from AND < to aprovecha el índice
func dayRange(date string) (time.Time, time.Time, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w, expected YYYY-MM-DD: %w", ErrInvalidDate, err)
	}
	return parsed, parsed.AddDate(0, 0, 1), nil
}
