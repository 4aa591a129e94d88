package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveQuoteCountsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewShippingMetrics(reg)

	m.ObserveQuote("quoted", 120*time.Millisecond)
	m.ObserveQuote("quoted", 80*time.Millisecond)
	m.ObserveQuote("quote_failed", 10*time.Millisecond)

	if got := testutil.ToFloat64(m.quoteResults.WithLabelValues("quoted")); got != 2 {
		t.Fatalf("expected 2 quoted requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.quoteResults.WithLabelValues("quote_failed")); got != 1 {
		t.Fatalf("expected 1 failed request, got %v", got)
	}
}

func TestIncDeliverySyncNormalizesLabels(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewShippingMetrics(reg)

	m.IncDeliverySync("Local Only")
	m.IncDeliverySync("local_only")
	m.IncDeliverySync("")

	if got := testutil.ToFloat64(m.deliverySync.WithLabelValues("local_only")); got != 2 {
		t.Fatalf("expected 2 local_only syncs, got %v", got)
	}
	if got := testutil.ToFloat64(m.deliverySync.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected 1 unknown sync, got %v", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	t.Parallel()

	m := NewShippingMetrics(nil)
	m.ObserveQuote("quoted", time.Second)
	m.IncDeliverySync("synced")
}
