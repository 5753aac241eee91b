package internal

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "fastspsc"

type Telemetry struct {
	kind string
	name string

	l *Logger

	tracer trace.Tracer
	meter  metric.Meter
}

func NewTelemetry(kind, name string) *Telemetry {
	return &Telemetry{
		kind: kind,
		name: name,

		l: NewLogger(kind, name),

		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
		meter:  otel.GetMeterProvider().Meter(instrumentationName),
	}
}

func (t *Telemetry) Logger() *Logger {
	return t.l
}

func (t *Telemetry) LogInfo(msg string, args ...any) {
	t.l.Info(msg, args...)
}

func (t *Telemetry) LogWarn(msg string, args ...any) {
	t.l.Warn(msg, args...)
}

func (t *Telemetry) LogError(msg string, err error, args ...any) {
	t.l.Error(msg, err, args...)
}

func (t *Telemetry) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("fastspsc.kind", t.kind),
		attribute.String("fastspsc.name", t.name),
	}
}

func (t *Telemetry) NewTrace(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, spanName, opts...)
	span.SetAttributes(t.attributes()...)
	return ctx, span
}

func (t *Telemetry) getMeterName(name string) string {
	return fmt.Sprintf("%s_%s_%s", t.kind, t.name, name)
}

// NewCounter creates an observable counter, the values are reported
// by the callback registered with [Telemetry.Observe].
func (t *Telemetry) NewCounter(name string, opts ...metric.Int64ObservableCounterOption) metric.Int64ObservableCounter {
	counterName := t.getMeterName(name)
	counter, err := t.meter.Int64ObservableCounter(counterName, opts...)
	if err != nil {
		t.LogError("failed to create counter", err, "name", name)
	}

	t.LogInfo("created counter", "name", counterName)

	return counter
}

// NewGauge creates an observable gauge, the values are reported
// by the callback registered with [Telemetry.Observe].
func (t *Telemetry) NewGauge(name string, opts ...metric.Int64ObservableGaugeOption) metric.Int64ObservableGauge {
	gaugeName := t.getMeterName(name)
	gauge, err := t.meter.Int64ObservableGauge(gaugeName, opts...)
	if err != nil {
		t.LogError("failed to create gauge", err, "name", name)
	}

	t.LogInfo("created gauge", "name", gaugeName)

	return gauge
}

// Observation is the value reported for an instrument on collection.
type Observation struct {
	Instrument metric.Int64Observable
	Value      int64
}

// Observe registers fn to report the value of each instrument on collection.
// The returned function unregisters the callback.
func (t *Telemetry) Observe(fn func() []Observation, instruments ...metric.Observable) func() {
	attrs := metric.WithAttributes(t.attributes()...)

	reg, err := t.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, obs := range fn() {
			o.ObserveInt64(obs.Instrument, obs.Value, attrs)
		}
		return nil
	}, instruments...)
	if err != nil {
		t.LogError("failed to register callback", err)
		return func() {}
	}

	return func() {
		if err := reg.Unregister(); err != nil {
			t.LogError("failed to unregister callback", err)
		}
	}
}
