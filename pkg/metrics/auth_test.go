package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAuthMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAuthMetrics(reg)
	metrics.IncLogin(OutcomeSuccess)
	metrics.IncLogin(OutcomeSuccess)
	metrics.IncLogin(OutcomeInvalidCredentials)
	metrics.IncRegister(OutcomeDuplicate)
	metrics.IncMigration(OutcomeMigrated)
	metrics.ObserveHash(40 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	cases := []struct {
		name    string
		outcome string
		want    float64
	}{
		{"auth_login_total", OutcomeSuccess, 2},
		{"auth_login_total", OutcomeInvalidCredentials, 1},
		{"auth_register_total", OutcomeDuplicate, 1},
		{"auth_legacy_migration_total", OutcomeMigrated, 1},
	}
	for _, tc := range cases {
		got, err := fetchCounterValue(mfs, tc.name, "outcome", tc.outcome)
		if err != nil {
			t.Fatalf("fetch %s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("expected %s{outcome=%s}=%v, got %v", tc.name, tc.outcome, tc.want, got)
		}
	}

	mf := findMetricFamily(mfs, "auth_hash_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatal("expected hash histogram to be exported")
	}
	if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Fatalf("expected one hash observation, got %d", got)
	}
}

func TestAuthMetricsEmptyOutcomeIsLabelledUnknown(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAuthMetrics(reg)
	metrics.IncRegister("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "auth_register_total", "outcome", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown outcome counter=1, got %v (%v)", got, err)
	}
}

func TestAuthMetricsNilSafe(t *testing.T) {
	var nilMetrics *AuthMetrics
	nilMetrics.IncLogin(OutcomeSuccess)
	nilMetrics.ObserveHash(time.Second)

	noop := NewAuthMetrics(nil)
	noop.IncRegister(OutcomeSuccess)
	noop.IncMigration(OutcomeFailed)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
