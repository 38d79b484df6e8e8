// Package analytics provides the optional event hook invoked after visitor
// actions such as a successful signup. A missing hook is always a no-op.
package analytics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Tracker records a named analytics event.
type Tracker interface {
	Track(ctx context.Context, event string)
}

// Nop is a Tracker that drops every event.
type Nop struct{}

func (Nop) Track(context.Context, string) {}

// Func adapts a plain function to a Tracker. A nil Func is a no-op.
type Func func(ctx context.Context, event string)

func (f Func) Track(ctx context.Context, event string) {
	if f != nil {
		f(ctx, event)
	}
}

// OrNop returns t, or Nop when t is nil.
func OrNop(t Tracker) Tracker {
	if t == nil {
		return Nop{}
	}

	return t
}

// Multi fans an event out to every tracker in order.
type Multi []Tracker

func (m Multi) Track(ctx context.Context, event string) {
	for _, t := range m {
		OrNop(t).Track(ctx, event)
	}
}

// Counter counts events on an OpenTelemetry counter labelled by event name.
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter registers the analytics_events counter on meter.
func NewCounter(meter metric.Meter) (*Counter, error) {
	c, err := meter.Int64Counter("analytics_events",
		metric.WithDescription("Visitor events reported by the launch page."),
		metric.WithUnit("{event}"))
	if err != nil {
		return nil, fmt.Errorf("could not create analytics counter: %w", err)
	}

	return &Counter{counter: c}, nil
}

func (c *Counter) Track(ctx context.Context, event string) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
}

var (
	_ Tracker = Nop{}
	_ Tracker = Func(nil)
	_ Tracker = Multi(nil)
	_ Tracker = (*Counter)(nil)
)
