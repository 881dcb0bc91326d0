package observer

import (
	"context"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// RevenueMetrics colectores compartidos por todas las cajas del proceso
type RevenueMetrics struct {
	RunningTotal  *prometheus.GaugeVec
	Notifications *prometheus.CounterVec
}

// NewRevenueMetrics crea y registra los colectores en reg
func NewRevenueMetrics(reg prometheus.Registerer) *RevenueMetrics {
	runningTotal := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pos",
		Subsystem: "sales",
		Name:      "running_total",
		Help:      "Running total of the sale in progress, per station.",
	}, []string{"station"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "sales",
		Name:      "running_total_updates_total",
		Help:      "Number of running total updates, per station.",
	}, []string{"station"})

	reg.MustRegister(runningTotal, notifications)
	return &RevenueMetrics{RunningTotal: runningTotal, Notifications: notifications}
}

// PrometheusObserver publica el running total de una caja como métrica
type PrometheusObserver struct {
	stationID string
	metrics   *RevenueMetrics
}

func NewPrometheusObserver(stationID string, metrics *RevenueMetrics) *PrometheusObserver {
	return &PrometheusObserver{stationID: stationID, metrics: metrics}
}

func (o *PrometheusObserver) OnRunningTotalChanged(ctx context.Context, saleID uuid.UUID, total entity.Amount) error {
	value, _ := total.Decimal().Float64()
	o.metrics.RunningTotal.WithLabelValues(o.stationID).Set(value)
	o.metrics.Notifications.WithLabelValues(o.stationID).Inc()
	return nil
}
