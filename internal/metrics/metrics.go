// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "freeshipping"

// Progress outcomes.
const (
	OutcomeEligible        = "eligible"
	OutcomeNotEligible     = "not_eligible"
	OutcomeDisabled        = "disabled"
	OutcomeCartUnavailable = "cart_unavailable"
	OutcomeInvalidData     = "invalid_data"
	OutcomeError           = "error"
)

var (
	// ProgressResults counts progress lookups by outcome.
	ProgressResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_results_total",
		Help:      "Free shipping progress lookups by outcome.",
	}, []string{"outcome"})

	// ConfigCacheLookups counts config cache hits and misses.
	ConfigCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_cache_lookups_total",
		Help:      "Config cache lookups by result.",
	}, []string{"result"})

	// ConfigEvents counts consumed config events by type.
	ConfigEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_events_total",
		Help:      "Consumed config events by type.",
	}, []string{"type"})

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Middleware records request latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
