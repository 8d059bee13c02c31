// Package metrics exposes the Prometheus collectors of the transfer service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector is what the services report to. NoopCollector satisfies it in tests.
type Collector interface {
	RecordQuote(result string)
	RecordOrderCreated(status, benefitType string, amount, fee float64)
	RecordStatusChange(from, to string)
	RecordCacheHit(name string)
	RecordCacheMiss(name string)
	RecordError(operation, kind string)
	RecordOperationDuration(operation string, d time.Duration)
}

// Quote results.
const (
	QuoteAvailable   = "available"
	QuoteUnavailable = "unavailable"
	QuoteRejected    = "rejected"
)

// TransferMetrics holds the registered collectors.
type TransferMetrics struct {
	QuotesTotal        *prometheus.CounterVec
	OrdersCreatedTotal *prometheus.CounterVec
	OrdersAmountTotal  *prometheus.CounterVec
	FeesTotal          *prometheus.CounterVec
	StatusChangesTotal *prometheus.CounterVec
	CacheRequestsTotal *prometheus.CounterVec
	ErrorsTotal        *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *TransferMetrics {
	f := promauto.With(reg)
	return &TransferMetrics{
		QuotesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_quotes_total",
			Help: "Quotes evaluated, by result",
		}, []string{"result"}),

		OrdersCreatedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_orders_created_total",
			Help: "Orders created, by initial status and benefit type",
		}, []string{"status", "benefit_type"}),

		OrdersAmountTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_orders_amount_total",
			Help: "Sum of order amounts",
		}, []string{"benefit_type"}),

		FeesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_fees_total",
			Help: "Sum of absolute fee or cashback values",
		}, []string{"benefit_type"}),

		StatusChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_order_status_changes_total",
			Help: "Order status transitions applied by the back office",
		}, []string{"from", "to"}),

		CacheRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_cache_requests_total",
			Help: "Cache lookups, by cache and outcome",
		}, []string{"cache", "outcome"}),

		ErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "transfer_errors_total",
			Help: "Errors, by operation and kind",
		}, []string{"operation", "kind"}),

		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transfer_operation_duration_seconds",
			Help:    "Service operation latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *TransferMetrics) RecordQuote(result string) {
	m.QuotesTotal.WithLabelValues(result).Inc()
}

func (m *TransferMetrics) RecordOrderCreated(status, benefitType string, amount, fee float64) {
	m.OrdersCreatedTotal.WithLabelValues(status, benefitType).Inc()
	m.OrdersAmountTotal.WithLabelValues(benefitType).Add(amount)
	if fee < 0 {
		fee = -fee
	}
	m.FeesTotal.WithLabelValues(benefitType).Add(fee)
}

func (m *TransferMetrics) RecordStatusChange(from, to string) {
	m.StatusChangesTotal.WithLabelValues(from, to).Inc()
}

func (m *TransferMetrics) RecordCacheHit(name string) {
	m.CacheRequestsTotal.WithLabelValues(name, "hit").Inc()
}

func (m *TransferMetrics) RecordCacheMiss(name string) {
	m.CacheRequestsTotal.WithLabelValues(name, "miss").Inc()
}

func (m *TransferMetrics) RecordError(operation, kind string) {
	m.ErrorsTotal.WithLabelValues(operation, kind).Inc()
}

func (m *TransferMetrics) RecordOperationDuration(operation string, d time.Duration) {
	m.OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) RecordQuote(string)                                  {}
func (NoopCollector) RecordOrderCreated(string, string, float64, float64) {}
func (NoopCollector) RecordStatusChange(string, string)                   {}
func (NoopCollector) RecordCacheHit(string)                               {}
func (NoopCollector) RecordCacheMiss(string)                              {}
func (NoopCollector) RecordError(string, string)                          {}
func (NoopCollector) RecordOperationDuration(string, time.Duration)       {}
