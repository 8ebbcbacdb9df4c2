package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PricingRunsTotal counts whole-cart pricing runs by outcome.
	PricingRunsTotal *prometheus.CounterVec
	// PricingLinesTotal counts line items processed by pricing runs.
	PricingLinesTotal prometheus.Counter
	// PriceUnavailableTotal counts lines that resolved to the "Request Price" state.
	PriceUnavailableTotal prometheus.Counter
	// ApprovalFlaggedTotal counts lines flagged for managerial approval.
	ApprovalFlaggedTotal prometheus.Counter
	// PricingRunDuration records whole-cart pricing run latency in milliseconds.
	PricingRunDuration prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PricingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_runs_total",
			Help:      "Count of cart pricing run outcomes.",
		}, []string{"result"})
		PricingLinesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_lines_total",
			Help:      "Total number of line items processed by pricing runs.",
		})
		PriceUnavailableTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_unavailable_total",
			Help:      "Number of line items resolved as price-not-available.",
		})
		ApprovalFlaggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "approval_flagged_total",
			Help:      "Number of line items flagged for approval by margin analysis.",
		})
		PricingRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_run_duration_ms",
			Help:      "Latency of whole-cart pricing runs in milliseconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		})

		mustRegisterCollector(reg, PricingRunsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PricingRunsTotal = v
			}
		})
		mustRegisterCollector(reg, PricingLinesTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				PricingLinesTotal = v
			}
		})
		mustRegisterCollector(reg, PriceUnavailableTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				PriceUnavailableTotal = v
			}
		})
		mustRegisterCollector(reg, ApprovalFlaggedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				ApprovalFlaggedTotal = v
			}
		})
		mustRegisterCollector(reg, PricingRunDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				PricingRunDuration = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
