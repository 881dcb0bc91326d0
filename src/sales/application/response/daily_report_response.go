package response

import (
	"time"

	"sales/src/sales/domain/entity"
)

// DailyReportResponse representa el reporte diario de ventas
type DailyReportResponse struct {
	Date               string        `json:"date"`                           // YYYY-MM-DD
	SalesCount         int           `json:"sales_count"`                    // Cantidad de ventas
	GrossTotal         entity.Amount `json:"gross_total"`                    // Suma running_total
	TotalDiscounts     entity.Amount `json:"total_discounts"`                // Suma discount_amount
	NetTotal           entity.Amount `json:"net_total"`                      // Suma payable_amount
	FirstTransactionAt *time.Time    `json:"first_transaction_at,omitempty"` // Primera venta del día
	LastTransactionAt  *time.Time    `json:"last_transaction_at,omitempty"`  // Última venta del día
}
