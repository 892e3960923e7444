package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wenje_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CascadeFailures counts best-effort cascade steps that failed and left
	// dependent records behind.
	CascadeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wenje_cascade_failures_total",
		Help: "Total number of failed cascade deletion steps by entity",
	}, []string{"entity", "step"})

	// LikeToggles counts like toggles by target kind and outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wenje_like_toggles_total",
		Help: "Total number of like toggles by target kind and outcome",
	}, []string{"kind", "outcome"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
