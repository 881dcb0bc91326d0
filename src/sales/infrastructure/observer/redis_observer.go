package observer

import (
	"context"
	"fmt"
	"time"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisObserver guarda el running total de la caja en Redis para pantallas de cliente
// y tableros. Key: <prefix>:station:<station_id>:running_total
type RedisObserver struct {
	client    *redis.Client
	stationID string
	keyPrefix string
	ttl       time.Duration
}

func NewRedisObserver(client *redis.Client, keyPrefix, stationID string, ttl time.Duration) *RedisObserver {
	if keyPrefix == "" {
		keyPrefix = "pos"
	}
	return &RedisObserver{
		client:    client,
		stationID: stationID,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Key retorna la key donde se guarda el total de la caja
func (o *RedisObserver) Key() string {
	return fmt.Sprintf("%s:station:%s:running_total", o.keyPrefix, o.stationID)
}

func (o *RedisObserver) OnRunningTotalChanged(ctx context.Context, saleID uuid.UUID, total entity.Amount) error {
	value := saleID.String() + "|" + total.String()
	if err := o.client.Set(ctx, o.Key(), value, o.ttl).Err(); err != nil {
		return fmt.Errorf("could not store running total in redis: %w", err)
	}
	return nil
}
