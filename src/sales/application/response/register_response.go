package response

import (
	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
)

// SaleStartedResponse respuesta de inicio de venta
type SaleStartedResponse struct {
	SaleID    uuid.UUID        `json:"sale_id"`
	StationID string           `json:"station_id"`
	State     entity.SaleState `json:"state"`
}

// AmountResponse se usa para monto a pagar, monto con descuento y vuelto
type AmountResponse struct {
	SaleID   uuid.UUID        `json:"sale_id"`
	Amount   entity.Amount    `json:"amount"`
	Currency string           `json:"currency"`
	State    entity.SaleState `json:"state"`
}

// SyncResponse resultado de la propagación a inventario y contabilidad
type SyncResponse struct {
	SaleID           uuid.UUID `json:"sale_id"`
	InventoryPosted  bool      `json:"inventory_posted"`
	AccountingPosted bool      `json:"accounting_posted"`
}
