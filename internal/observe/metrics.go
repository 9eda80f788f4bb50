// Package observe provides the OpenTelemetry metric instruments recorded by
// the playback synchronizer.
//
// [Default] binds the instruments to the global meter provider, which is a
// no-op until the host installs an SDK provider with [InitProvider]. Tests
// should use [NewMetrics] with their own [metric.MeterProvider].
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "readalong"

// Metrics holds the metric instruments. A nil *Metrics records nothing.
type Metrics struct {
	// Ticks counts synchronizer steps. Use with attribute:
	//   attribute.String("state", ...)
	Ticks metric.Int64Counter

	// Reports counts active-index changes delivered to the sink.
	Reports metric.Int64Counter

	// Estimates counts timing estimations. Use with attribute:
	//   attribute.String("reason", ...)
	Estimates metric.Int64Counter

	// ActiveSessions tracks sessions currently in the tracking state.
	ActiveSessions metric.Int64UpDownCounter
}

// NewMetrics creates all instruments from the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Ticks, err = m.Int64Counter("readalong.playback.ticks",
		metric.WithDescription("Synchronizer steps executed."),
	); err != nil {
		return nil, err
	}
	if met.Reports, err = m.Int64Counter("readalong.playback.reports",
		metric.WithDescription("Active word changes reported to the sink."),
	); err != nil {
		return nil, err
	}
	if met.Estimates, err = m.Int64Counter("readalong.timing.estimates",
		metric.WithDescription("Word timing estimations."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("readalong.playback.active_sessions",
		metric.WithDescription("Playback sessions currently tracking."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns instruments bound to otel.GetMeterProvider, created once.
// It returns nil if instrument creation fails.
func Default() *Metrics {
	defaultOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err == nil {
			defaultMetrics = m
		}
	})
	return defaultMetrics
}

func (m *Metrics) RecordTick(ctx context.Context, state string) {
	if m == nil {
		return
	}
	m.Ticks.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}

func (m *Metrics) RecordReport(ctx context.Context) {
	if m == nil {
		return
	}
	m.Reports.Add(ctx, 1)
}

func (m *Metrics) RecordEstimate(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.Estimates.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// SessionStarted and SessionEnded move the active session gauge.
func (m *Metrics) SessionStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, 1)
}

func (m *Metrics) SessionEnded(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, -1)
}
