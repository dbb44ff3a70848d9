package shm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures optional instrumentation on a handle. Options affect
// only the handle they are passed to; the package keeps no global state
// beyond the internal logger.
type Option func(*options)

type options struct {
	meter    metric.Meter
	tracer   trace.Tracer
	recorder Recorder
}

// WithMeter instruments the handle's lifecycle with OpenTelemetry metrics:
// an acquisition counter, a release counter and an up-down counter of
// currently mapped bytes.
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}

// WithTracer wraps the handle's construction in a span named after the
// acquisition mode.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithRecorder forwards the handle's lifecycle events to r. See the audit
// package for a buffering implementation.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func (o *options) record(ev Event) {
	if o.recorder != nil {
		o.recorder.Record(ev)
	}
}

type instruments struct {
	acquires    metric.Int64Counter
	releases    metric.Int64Counter
	mappedBytes metric.Int64UpDownCounter
}

func newInstruments(m metric.Meter) *instruments {
	if m == nil {
		return nil
	}
	acquires, err1 := m.Int64Counter("shm.region.acquires",
		metric.WithDescription("Region acquisitions (create or open) by this process."))
	releases, err2 := m.Int64Counter("shm.region.releases",
		metric.WithDescription("Region mapping releases by this process."))
	mapped, err3 := m.Int64UpDownCounter("shm.region.mapped_bytes",
		metric.WithDescription("Bytes currently mapped by instrumented handles."),
		metric.WithUnit("By"))
	if err1 != nil || err2 != nil || err3 != nil {
		logf(levelWarn, "otel instruments unavailable: %v %v %v", err1, err2, err3)
		return nil
	}
	return &instruments{acquires: acquires, releases: releases, mappedBytes: mapped}
}

func (i *instruments) acquired(ctx context.Context, name string, size int) {
	if i == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("shm.name", name))
	i.acquires.Add(ctx, 1, attrs)
	i.mappedBytes.Add(ctx, int64(size), attrs)
}

func (i *instruments) released(ctx context.Context, name string, size int) {
	if i == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("shm.name", name))
	i.releases.Add(ctx, 1, attrs)
	i.mappedBytes.Add(ctx, -int64(size), attrs)
}
