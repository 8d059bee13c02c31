package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTransferMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordQuote(QuoteAvailable)
	m.RecordQuote(QuoteAvailable)
	m.RecordQuote(QuoteUnavailable)
	m.RecordOrderCreated("SUBMITTED", "CASHBACK", 1000, -30)
	m.RecordStatusChange("SUBMITTED", "COMPLETED")
	m.RecordCacheHit("methods")
	m.RecordCacheMiss("methods")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues(QuoteAvailable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues(QuoteUnavailable)))
	assert.Equal(t, 1000.0, testutil.ToFloat64(m.OrdersAmountTotal.WithLabelValues("CASHBACK")))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.FeesTotal.WithLabelValues("CASHBACK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusChangesTotal.WithLabelValues("SUBMITTED", "COMPLETED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("methods", "miss")))
}

func TestNoopCollectorSatisfiesCollector(t *testing.T) {
	var c Collector = NoopCollector{}
	c.RecordError("quote", "db")
}
