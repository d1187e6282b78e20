// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics tracks engine run outcomes, iteration counts, and tool
// invocations for production monitoring.
type RunMetrics struct {
	runCounter      metric.Int64Counter
	iterationHist   metric.Int64Histogram
	toolCounter     metric.Int64Counter
	runDurationHist metric.Float64Histogram
}

// NewRunMetrics creates a run metrics tracker with OTEL meters.
func NewRunMetrics() (*RunMetrics, error) {
	meter := otel.Meter("praxis/agent")

	runCounter, err := meter.Int64Counter(
		"praxis.runs.total",
		metric.WithDescription("Total engine runs by terminal outcome"),
	)
	if err != nil {
		return nil, err
	}

	iterationHist, err := meter.Int64Histogram(
		"praxis.runs.iterations",
		metric.WithDescription("Iterations consumed per run"),
	)
	if err != nil {
		return nil, err
	}

	toolCounter, err := meter.Int64Counter(
		"praxis.tools.invocations",
		metric.WithDescription("Tool invocations by tool name and success"),
	)
	if err != nil {
		return nil, err
	}

	runDurationHist, err := meter.Float64Histogram(
		"praxis.runs.duration",
		metric.WithDescription("Run wall-clock duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		runCounter:      runCounter,
		iterationHist:   iterationHist,
		toolCounter:     toolCounter,
		runDurationHist: runDurationHist,
	}, nil
}

// RecordRun records one completed run.
func (rm *RunMetrics) RecordRun(ctx context.Context, outcome string, iterations int, elapsed time.Duration) {
	if rm == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	rm.runCounter.Add(ctx, 1, attrs)
	rm.iterationHist.Record(ctx, int64(iterations), attrs)
	rm.runDurationHist.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordToolInvocation records one tool invocation attempt.
func (rm *RunMetrics) RecordToolInvocation(ctx context.Context, toolName string, success bool) {
	if rm == nil {
		return
	}
	rm.toolCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", toolName),
		attribute.Bool("success", success),
	))
}
