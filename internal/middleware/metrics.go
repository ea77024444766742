package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladle_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ActiveWebSockets is the gauge of currently connected event stream clients.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ladle_active_websockets",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketDrops counts messages dropped due to backpressure by reason.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladle_websocket_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})

	// CounterDeltas counts engagement counter mutations by kind and outcome.
	CounterDeltas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladle_counter_deltas_total",
		Help: "Total number of engagement counter mutations by kind and outcome",
	}, []string{"kind", "outcome"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware adapts the Prometheus collector into a Fiber handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
