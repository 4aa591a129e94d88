package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShippingMetrics records quote and delivery workflow outcomes.
type ShippingMetrics struct {
	quoteDuration *prometheus.HistogramVec
	quoteResults  *prometheus.CounterVec
	deliverySync  *prometheus.CounterVec
}

// NewShippingMetrics registers the workflow metrics on the provided registerer.
func NewShippingMetrics(reg prometheus.Registerer) *ShippingMetrics {
	if reg == nil {
		return &ShippingMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of carrier quote requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	quoteResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_requests_total",
		Help: "Carrier quote requests by outcome.",
	}, []string{"outcome"})
	deliverySync := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_sync_total",
		Help: "Delivery confirmations by sync result.",
	}, []string{"sync_status"})
	reg.MustRegister(quoteDuration, quoteResults, deliverySync)
	return &ShippingMetrics{
		quoteDuration: quoteDuration,
		quoteResults:  quoteResults,
		deliverySync:  deliverySync,
	}
}

// ObserveQuote records one quote attempt with its duration and outcome.
func (m *ShippingMetrics) ObserveQuote(outcome string, duration time.Duration) {
	if m == nil || m.quoteDuration == nil {
		return
	}
	label := normalizeLabel(outcome)
	m.quoteDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.quoteResults.WithLabelValues(label).Inc()
}

// IncDeliverySync counts a delivery confirmation by its sync status.
func (m *ShippingMetrics) IncDeliverySync(syncStatus string) {
	if m == nil || m.deliverySync == nil {
		return
	}
	m.deliverySync.WithLabelValues(normalizeLabel(syncStatus)).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return strings.ReplaceAll(trimmed, " ", "_")
}
