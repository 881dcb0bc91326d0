package request

import "sales/src/sales/domain/entity"

// EnterItemRequest request para ingresar un item a la venta en curso
type EnterItemRequest struct {
	ItemID   int `json:"item_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// EndSaleRequest cierra la venta. Si RunningTotal es nil se usa el último PurchaseInfo de la caja
type EndSaleRequest struct {
	RunningTotal *entity.Amount `json:"running_total,omitempty"`
}

// CustomerIDRequest identifica al cliente para la regla de descuento
type CustomerIDRequest struct {
	CustomerID int `json:"customer_id" binding:"required"`
}

// PaymentRequest monto entregado por el cliente y total a cobrar.
// Punteros para que binding distinga un campo ausente de un monto cero
type PaymentRequest struct {
	Payment    *entity.Amount `json:"payment" binding:"required"`
	TotalPrice *entity.Amount `json:"total_price" binding:"required"`
}
