package entity

import (
	"time"

	"github.com/google/uuid"
)

// SaleLog es el registro de una venta que se entrega a la impresora y a los
// sistemas externos de inventario y contabilidad
type SaleLog struct {
	SaleID         uuid.UUID  `json:"sale_id"`
	Currency       string     `json:"currency"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	State          SaleState  `json:"state"`
	Items          []LineItem `json:"items"`
	EnteredIDs     []int      `json:"entered_ids"`
	RunningTotal   Amount     `json:"running_total"`
	DiscountName   string     `json:"discount_name,omitempty"`
	DiscountAmount Amount     `json:"discount_amount"`
	PayableAmount  Amount     `json:"payable_amount"`
	AmountPaid     Amount     `json:"amount_paid"`
	Change         Amount     `json:"change"`
	CustomerID     *int       `json:"customer_id,omitempty"`
}

// TotalItems retorna el número de líneas de la venta
func (l *SaleLog) TotalItems() int {
	return len(l.Items)
}
