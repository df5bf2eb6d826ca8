package metrics

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	divisor = 100

	weatherEndpoint = "/api/weather"
)

// Metrics holds Prometheus metric vectors for the lookup service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LookupsTotal      *prometheus.CounterVec
	LookupErrorsTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all lookup-service metrics on the
// default registry, alongside go runtime and process collectors.
func NewMetrics(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "lookups_total",
				Help:      "Total number of weather lookups",
			},
			[]string{"city"},
		),

		LookupErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "lookup_errors_total",
				Help:      "Total number of failed weather lookups",
			},
			[]string{"city", "error_type"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LookupsTotal,
		m.LookupErrorsTotal,
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/sched/latencies:seconds")},
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// HTTPMiddleware returns a Gin middleware to instrument HTTP endpoints.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		status := c.Writer.Status()
		statusClass := getStatusClass(status)

		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Request.Method,
			"endpoint":     c.FullPath(),
			"status_class": statusClass,
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Request.Method,
			"endpoint": c.FullPath(),
		}).Observe(d.Seconds())

		// Domain counters only make sense on the lookup endpoint.
		if c.FullPath() != weatherEndpoint {
			return
		}

		city := c.Query("cityName")
		if city == "" {
			city = c.PostForm("cityName")
		}
		m.LookupsTotal.WithLabelValues(city).Inc()
		if statusClass == "5xx" {
			m.LookupErrorsTotal.WithLabelValues(city, "server_error").Inc()
		}
		if statusClass == "4xx" {
			m.LookupErrorsTotal.WithLabelValues(city, "client_error").Inc()
		}
	}
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
