package port

import "sales/src/sales/domain/entity"

// ReceiptRenderer convierte el registro de la venta en texto imprimible
type ReceiptRenderer interface {
	Render(log *entity.SaleLog) (string, error)
}
