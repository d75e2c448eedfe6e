// Package telemetry collects hierarchical timings for query processing.
//
// Collectors travel through a context.Context, so instrumented code does not
// need extra parameters. When no collector is present a no-op collector is
// used and instrumentation costs nothing.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("parse query.sql")
//	ctx = telemetry.WithRootTimer(ctx, timer)
//	sel, err := parser.ParseSelectContext(ctx, "query.sql", text)
//	timer.End()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"io"
)

type contextKey int

const (
	collectorKey contextKey = iota
	rootTimerKey
)

// Collector collects timing data.
type Collector interface {
	// Start begins timing an operation. End the returned Timer when the
	// operation completes.
	Start(name string) Timer

	// Report writes the collected timings to w.
	Report(w io.Writer)
}

// Timer tracks a single operation's timing.
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this timer.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context.
// If no collector is present, returns a collector that does nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithRootTimer stores the timer that nested operations should hang under.
func WithRootTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey, timer)
}

// StartTimer starts a timer named name. It nests under the root timer from
// ctx when there is one, otherwise it starts on the context's collector.
func StartTimer(ctx context.Context, name string) Timer {
	if root, ok := ctx.Value(rootTimerKey).(Timer); ok {
		return root.Child(name)
	}
	return FromContext(ctx).Start(name)
}
