package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MessagesProcessed    prometheus.Counter
	CommandsProcessed    prometheus.Counter
	CallbacksProcessed   prometheus.Counter
	OrdersCreated        prometheus.Counter
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bot_messages_processed_total",
			Help: "Total number of processed messages",
		}),
		CommandsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bot_commands_processed_total",
			Help: "Total number of processed commands",
		}),
		CallbacksProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bot_callbacks_processed_total",
			Help: "Total number of processed callback queries",
		}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bot_orders_created_total",
			Help: "Total number of orders created through the bot",
		}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of errors",
		}),
		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bot_update_processing_seconds",
			Help:    "Time spent processing a single update",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
