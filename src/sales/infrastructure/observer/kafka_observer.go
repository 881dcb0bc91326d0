package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventRunningTotalChanged es el tipo de evento publicado en cada actualización
const EventRunningTotalChanged = "sale.running_total_changed"

// RunningTotalEvent es el payload publicado en Kafka
type RunningTotalEvent struct {
	EventID      string        `json:"event_id"`
	Type         string        `json:"type"`
	StationID    string        `json:"station_id"`
	SaleID       string        `json:"sale_id"`
	RunningTotal entity.Amount `json:"running_total"`
	CreatedAt    time.Time     `json:"created_at"`
}

// MessageWriter es la parte de *kafka.Writer que usa el observer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafkaWriter crea un writer con balanceo por key, así los eventos de una venta quedan en orden
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// KafkaObserver publica cada cambio de running total como evento
type KafkaObserver struct {
	writer    MessageWriter
	stationID string
}

func NewKafkaObserver(writer MessageWriter, stationID string) *KafkaObserver {
	return &KafkaObserver{writer: writer, stationID: stationID}
}

func (o *KafkaObserver) OnRunningTotalChanged(ctx context.Context, saleID uuid.UUID, total entity.Amount) error {
	now := time.Now().UTC()
	data, err := json.Marshal(RunningTotalEvent{
		EventID:      uuid.NewString(),
		Type:         EventRunningTotalChanged,
		StationID:    o.stationID,
		SaleID:       saleID.String(),
		RunningTotal: total,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("could not marshal running total event: %w", err)
	}
	if err := o.writer.WriteMessages(ctx, kafka.Message{Key: []byte(saleID.String()), Value: data, Time: now}); err != nil {
		return fmt.Errorf("could not publish running total event: %w", err)
	}
	return nil
}
