package response

import "sales/src/sales/domain/entity"

// PurchaseInfo es lo que la caja muestra luego de cada item ingresado
// Se recalcula en cada llamada, no se persiste
type PurchaseInfo struct {
	ItemID       int           `json:"item_id"`
	Description  string        `json:"description"`
	Price        entity.Amount `json:"price"`
	Quantity     int           `json:"quantity"`
	RunningTotal entity.Amount `json:"running_total"`
}
