// Package metrics collects Prometheus metrics for authentication and device events.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
)

// Recorder is what the service layer reports to.
type Recorder interface {
	RecordLogin(result string)
	RecordRefresh(result string)
	RecordDeviceRegistration(result string)
}

type Collector struct {
	logins       *prometheus.CounterVec
	refreshes    *prometheus.CounterVec
	devices      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
	gatherer     prometheus.Gatherer
}

// NewCollector registers all metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_login_attempts_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_token_refresh_total",
			Help: "Refresh token exchanges by result.",
		}, []string{"result"}),
		devices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_device_registrations_total",
			Help: "Device registrations by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "account_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		c.logins,
		c.refreshes,
		c.devices,
		c.httpRequests,
		c.httpLatency,
	)
	return c
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRefresh(result string) {
	c.refreshes.WithLabelValues(result).Inc()
}

func (c *Collector) RecordDeviceRegistration(result string) {
	c.devices.WithLabelValues(result).Inc()
}

// Middleware records request count and latency.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		c.httpRequests.WithLabelValues(ctx.Method(), strconv.Itoa(status)).Inc()
		c.httpLatency.Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{}))
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordLogin(string)              {}
func (Nop) RecordRefresh(string)            {}
func (Nop) RecordDeviceRegistration(string) {}
