package usecase

import (
	"context"
	"fmt"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// RevenueNotifier reparte el running total a los observers, en orden de registro.
// El primer error corta la notificación de los restantes
type RevenueNotifier struct {
	observers []port.RevenueObserver
}

// NewRevenueNotifier copia la lista para que registros posteriores no afecten la venta en curso
func NewRevenueNotifier(observers []port.RevenueObserver) *RevenueNotifier {
	list := make([]port.RevenueObserver, len(observers))
	copy(list, observers)
	return &RevenueNotifier{observers: list}
}

// Notify llama a cada observer de forma sincrónica
func (n *RevenueNotifier) Notify(ctx context.Context, saleID uuid.UUID, total entity.Amount) error {
	for i, obs := range n.observers {
		if err := obs.OnRunningTotalChanged(ctx, saleID, total); err != nil {
			return fmt.Errorf("revenue observer %d failed: %w", i, err)
		}
	}
	return nil
}

func (n *RevenueNotifier) Len() int {
	return len(n.observers)
}
