package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStockMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStockMetrics(reg)

	m.Observe(OperationCheckout, OutcomeSuccess, 3, 10*time.Millisecond)
	m.Observe(OperationCheckout, OutcomeRange, 50, 5*time.Millisecond)
	m.Observe(OperationReorder, OutcomeSuccess, 5, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	cases := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"inventory_stock_mutations_total", map[string]string{"operation": OperationCheckout, "outcome": OutcomeSuccess}, 1},
		{"inventory_stock_mutations_total", map[string]string{"operation": OperationCheckout, "outcome": OutcomeRange}, 1},
		{"inventory_stock_mutations_total", map[string]string{"operation": OperationReorder, "outcome": OutcomeSuccess}, 1},
		{"inventory_stock_units_total", map[string]string{"operation": OperationCheckout}, 3},
		{"inventory_stock_units_total", map[string]string{"operation": OperationReorder}, 5},
	}
	for _, tc := range cases {
		got, err := fetchCounterValue(mfs, tc.name, tc.labels)
		if err != nil {
			t.Fatalf("fetch %s %v: %v", tc.name, tc.labels, err)
		}
		if got != tc.want {
			t.Fatalf("%s %v = %f, want %f", tc.name, tc.labels, got, tc.want)
		}
	}

	if got, err := fetchHistogramCount(mfs, "inventory_stock_mutation_duration_seconds", map[string]string{"operation": OperationCheckout}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 checkout observations, got %d", got)
	}
}

func TestNilStockMetricsIsNoop(t *testing.T) {
	var m *StockMetrics
	m.Observe(OperationCheckout, OutcomeSuccess, 1, time.Millisecond)
	NewStockMetrics(nil).Observe(OperationReorder, OutcomeSuccess, 1, time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return metric.GetCounter().GetValue(), nil
}

func fetchHistogramCount(mfs []*dto.MetricFamily, name string, labels map[string]string) (uint64, error) {
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return metric.GetHistogram().GetSampleCount(), nil
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchesLabels(metric.GetLabel(), labels) {
				return metric, nil
			}
		}
		return nil, fmt.Errorf("metric %q missing labels %v", name, labels)
	}
	return nil, fmt.Errorf("metric %q not found", name)
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok {
			if v != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}
