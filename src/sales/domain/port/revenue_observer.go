package port

import (
	"context"
	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
)

// RevenueObserver recibe el running total cada vez que cambia.
// Un error corta la notificación de los observers restantes
type RevenueObserver interface {
	OnRunningTotalChanged(ctx context.Context, saleID uuid.UUID, total entity.Amount) error
}
