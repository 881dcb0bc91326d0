package response

import (
	"time"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
)

// SaleListItem representa una venta en el listado del día
type SaleListItem struct {
	SaleID         uuid.UUID     `json:"sale_id"`
	CustomerID     *int          `json:"customer_id,omitempty"`
	RunningTotal   entity.Amount `json:"running_total"`
	DiscountAmount entity.Amount `json:"discount_amount"`
	PayableAmount  entity.Amount `json:"payable_amount"`
	AmountPaid     entity.Amount `json:"amount_paid"`
	Change         entity.Amount `json:"change"`
	Currency       string        `json:"currency"`
	TotalItems     int           `json:"total_items"`
	CreatedAt      time.Time     `json:"created_at"`
}
