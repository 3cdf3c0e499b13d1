package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the product recommendation endpoint",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total recommendation requests served",
	})

	OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total orders placed successfully",
	})

	OrderStatusUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Order status transitions applied, by target status",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendTotal,
		OrdersPlacedTotal,
		OrderStatusUpdates,
	)
}
