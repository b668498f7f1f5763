package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationCheckout = "checkout"
	OperationReorder  = "reorder"

	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeInactive = "inactive"
	OutcomeRange    = "out_of_range"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// StockMetrics records checkout and reorder activity.
type StockMetrics struct {
	mutations *prometheus.CounterVec
	units     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewStockMetrics registers the stock mutation metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_stock_mutations_total",
		Help: "Stock mutation attempts by operation and outcome.",
	}, []string{"operation", "outcome"})
	units := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_stock_units_total",
		Help: "Units moved by successful stock mutations.",
	}, []string{"operation"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_stock_mutation_duration_seconds",
		Help:    "Duration of stock mutations including persistence.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(mutations, units, duration)
	return &StockMetrics{
		mutations: mutations,
		units:     units,
		duration:  duration,
	}
}

// Observe records one mutation attempt. units is only counted on success.
func (s *StockMetrics) Observe(operation, outcome string, units int, elapsed time.Duration) {
	if s == nil || s.mutations == nil {
		return
	}
	operation = normalizeLabel(operation)
	s.mutations.WithLabelValues(operation, normalizeLabel(outcome)).Inc()
	s.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess && units > 0 {
		s.units.WithLabelValues(operation).Add(float64(units))
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
