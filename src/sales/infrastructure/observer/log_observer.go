package observer

import (
	"context"
	"log"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
)

// LogObserver escribe cada cambio de running total en el log del servicio
type LogObserver struct {
	stationID string
	logger    *log.Logger
}

// NewLogObserver usa el logger estándar si logger es nil
func NewLogObserver(stationID string, logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{stationID: stationID, logger: logger}
}

func (o *LogObserver) OnRunningTotalChanged(ctx context.Context, saleID uuid.UUID, total entity.Amount) error {
	o.logger.Printf("📈 Station %s: sale %s running total %s", o.stationID, saleID, total)
	return nil
}
