// Package telemetry wires OpenTelemetry tracing and Prometheus metrics
// around extraction, without cube knowing either library exists: it builds
// a cube.Hooks value from plain closures and hands that to the Extractor.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/latticeforge/kbest/cube"
)

// Telemetry owns the tracer provider and metric collectors for one process.
type Telemetry struct {
	tracer      trace.Tracer
	kthDuration prometheus.Histogram
	kthTotal    *prometheus.CounterVec
	provider    *sdktrace.TracerProvider
}

// New builds a Telemetry with a stdout trace exporter and registers its
// metrics with the default Prometheus registry.
func New() (*Telemetry, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return &Telemetry{
		tracer:   provider.Tracer("kbest/cube"),
		provider: provider,
		kthDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "kbest_kth_hypothesis_duration_seconds",
			Help: "Duration of lazy_kbest_at_node invocations.",
		}),
		kthTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kbest_kth_hypothesis_total",
			Help: "Count of lazy_kbest_at_node invocations by outcome.",
		}, []string{"outcome"}),
	}, nil
}

// Shutdown flushes the trace exporter.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// Hooks returns a cube.Hooks that records one span and one metric
// observation per KthHypothesis call on the Extractor it's attached to.
// The returned value carries per-extraction span state, so each Extractor
// needs its own Hooks from a separate call; sharing one across concurrent
// extractions would race on the in-flight span.
func (t *Telemetry) Hooks() *cube.Hooks {
	type active struct {
		span trace.Span
	}
	var cur active

	return &cube.Hooks{
		BeforeKth: func(nodeID string, k int) {
			_, span := t.tracer.Start(context.Background(), "lazy_kbest_at_node",
				trace.WithAttributes(
					attribute.String("node_id", nodeID),
					attribute.Int("k", k),
				))
			cur.span = span
		},
		AfterKth: func(nodeID string, k int, ok bool, err error, dur time.Duration) {
			t.kthDuration.Observe(dur.Seconds())

			outcome := "ok"
			switch {
			case err != nil:
				outcome = "error"
			case !ok:
				outcome = "unreachable"
			}
			t.kthTotal.WithLabelValues(outcome).Inc()

			if cur.span != nil {
				if err != nil {
					cur.span.RecordError(err)
				}
				cur.span.End()
				cur.span = nil
			}
		},
	}
}
