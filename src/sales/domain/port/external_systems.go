package port

import (
	"context"
	"sales/src/sales/domain/entity"
)

// InventoryGateway descuenta del inventario externo las unidades vendidas
type InventoryGateway interface {
	PostInventory(ctx context.Context, log *entity.SaleLog) error
}

// AccountingGateway registra la venta en el sistema contable externo
type AccountingGateway interface {
	PostAccounting(ctx context.Context, log *entity.SaleLog) error
}
