package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PlanMetrics records trip plan requests.
type PlanMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func NewPlanMetrics() (*PlanMetrics, error) {
	meter := otel.Meter("jetsetgo/plans")

	requests, err := meter.Int64Counter(
		"jetsetgo.plans.total",
		metric.WithDescription("Trip plan requests by outcome and mode"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"jetsetgo.plans.duration",
		metric.WithDescription("Trip plan generation time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PlanMetrics{requests: requests, duration: duration}, nil
}

// Record counts one plan request. mode is "crew" or "placeholder"; outcome is "success",
// "error" or "timeout".
func (m *PlanMetrics) Record(ctx context.Context, mode, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("outcome", outcome),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
