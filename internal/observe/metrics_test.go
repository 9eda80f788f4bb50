package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTick(ctx, "tracking")
	m.RecordTick(ctx, "tracking")
	m.RecordTick(ctx, "idle")
	m.RecordReport(ctx)
	m.RecordEstimate(ctx, "duration")

	rm := collect(t, reader)

	ticks := findMetric(rm, "readalong.playback.ticks")
	if ticks == nil {
		t.Fatal("ticks metric not found")
	}
	sum, ok := ticks.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("ticks data type = %T", ticks.Data)
	}
	var tracking int64
	for _, dp := range sum.DataPoints {
		if v, _ := dp.Attributes.Value(attribute.Key("state")); v.AsString() == "tracking" {
			tracking = dp.Value
		}
	}
	if tracking != 2 {
		t.Errorf("tracking ticks = %d, want 2", tracking)
	}

	reports := findMetric(rm, "readalong.playback.reports")
	if reports == nil {
		t.Fatal("reports metric not found")
	}
	if got := reports.Data.(metricdata.Sum[int64]).DataPoints[0].Value; got != 1 {
		t.Errorf("reports = %d, want 1", got)
	}
}

func TestActiveSessions(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.SessionStarted(ctx)
	m.SessionStarted(ctx)
	m.SessionEnded(ctx)

	sessions := findMetric(collect(t, reader), "readalong.playback.active_sessions")
	if sessions == nil {
		t.Fatal("active_sessions metric not found")
	}
	if got := sessions.Data.(metricdata.Sum[int64]).DataPoints[0].Value; got != 1 {
		t.Errorf("active sessions = %d, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordTick(ctx, "idle")
	m.RecordReport(ctx)
	m.RecordEstimate(ctx, "text")
	m.SessionStarted(ctx)
	m.SessionEnded(ctx)
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}
