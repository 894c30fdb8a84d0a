package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/location/hash"
	"github.com/boom-router/boom/pkg/location/memory"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func metricValue(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("metric Write() error: %v", err)
	}
	switch {
	case m.Counter != nil:
		return m.GetCounter().GetValue()
	case m.Gauge != nil:
		return m.GetGauge().GetValue()
	case m.Histogram != nil:
		return float64(m.GetHistogram().GetSampleCount())
	}
	t.Fatal("unsupported metric type")
	return 0
}

func TestPrometheusRecordsNavigations(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	p := Prometheus(WithRegistry(reg), WithNamespace("test"))(memory.New(memory.Config{}))

	p.Navigate("/a")
	p.Navigate("/b")
	p.Navigate("/c", location.WithReplace())

	m := globalMetrics[reg]
	if got := metricValue(t, m.navigations.WithLabelValues("push")); got != 2 {
		t.Errorf("navigations_total(push) = %v, want 2", got)
	}
	if got := metricValue(t, m.navigations.WithLabelValues("replace")); got != 1 {
		t.Errorf("navigations_total(replace) = %v, want 1", got)
	}
	if got := metricValue(t, m.navigationDuration); got != 3 {
		t.Errorf("navigation_duration_seconds count = %v, want 3", got)
	}
	if p.Snapshot().Path != "/c" {
		t.Errorf("wrapped provider did not navigate, at %q", p.Snapshot().Path)
	}
}

func TestPrometheusTracksSubscribers(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	p := Prometheus(WithRegistry(reg))(memory.New(memory.Config{}))
	m := globalMetrics[reg]

	calls := 0
	un1 := p.Subscribe(func() { calls++ })
	un2 := p.Subscribe(func() { calls++ })
	if got := metricValue(t, m.subscribers); got != 2 {
		t.Errorf("subscribers = %v, want 2", got)
	}

	p.Navigate("/x")
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if got := metricValue(t, m.notifications); got != 2 {
		t.Errorf("notifications_total = %v, want 2", got)
	}

	un1()
	un1()
	un2()
	if got := metricValue(t, m.subscribers); got != 0 {
		t.Errorf("subscribers = %v, want 0", got)
	}
}

func TestPrometheusSharesCollectors(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	a := Prometheus(WithRegistry(reg))(memory.New(memory.Config{}))
	b := Prometheus(WithRegistry(reg))(memory.New(memory.Config{}))

	a.Navigate("/a")
	b.Navigate("/b")

	if got := metricValue(t, globalMetrics[reg].navigations.WithLabelValues("push")); got != 2 {
		t.Errorf("navigations_total(push) = %v, want 2", got)
	}
}

func TestPrometheusSeparateRegistries(t *testing.T) {
	resetGlobalMetricsForTest()
	first := prometheus.NewRegistry()
	second := prometheus.NewRegistry()

	a := Prometheus(WithRegistry(first))(memory.New(memory.Config{}))
	b := Prometheus(WithRegistry(second), WithNamespace("other"))(memory.New(memory.Config{}))

	a.Navigate("/a")
	b.Navigate("/b")
	b.Navigate("/c")

	if got := metricValue(t, globalMetrics[first].navigations.WithLabelValues("push")); got != 1 {
		t.Errorf("first registry navigations_total(push) = %v, want 1", got)
	}
	if got := metricValue(t, globalMetrics[second].navigations.WithLabelValues("push")); got != 2 {
		t.Errorf("second registry navigations_total(push) = %v, want 2", got)
	}

	families, err := second.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "other_navigations_total" {
			found = true
		}
	}
	if !found {
		t.Error("second registry should export other_navigations_total")
	}
}

func TestChainAndUnwrap(t *testing.T) {
	resetGlobalMetricsForTest()

	inner := memory.New(memory.Config{Record: true})
	p := Chain(inner,
		Prometheus(WithRegistry(prometheus.NewRegistry())),
		OpenTelemetry(),
	)

	p.Navigate("/a")

	mp, ok := Unwrap(p).(*memory.Provider)
	if !ok {
		t.Fatalf("Unwrap() = %T, want *memory.Provider", Unwrap(p))
	}
	rec, ok := mp.Recorder()
	if !ok || rec.History().Len() != 2 {
		t.Error("expected recorded history through the unwrapped provider")
	}
}

func TestWrappersKeepHrefs(t *testing.T) {
	resetGlobalMetricsForTest()

	p := Chain(hash.New(hash.Config{}),
		Prometheus(WithRegistry(prometheus.NewRegistry())),
		OpenTelemetry(),
	)
	if got := location.Href(p, "/a"); got != "#/a" {
		t.Errorf("Href() = %q, want #/a", got)
	}
}
