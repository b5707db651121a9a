package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records session-level measurements through an OpenTelemetry
// meter exported to Prometheus. A nil *Observability is valid and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	applyCounter  otelmetric.Int64Counter
	applyDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	applyCounter, _ := meter.Int64Counter(
		"sessions.apply",
		otelmetric.WithDescription("Number of event batches applied to form sessions"),
	)

	applyDuration, _ := meter.Float64Histogram(
		"sessions.apply.duration",
		otelmetric.WithDescription("Event batch processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		applyCounter:  applyCounter,
		applyDuration: applyDuration,
	}
}

// RecordApply counts one batch; status is "ok" or "error", completed reports
// whether the session ended in the summary view.
func (o *Observability) RecordApply(ctx context.Context, duration time.Duration, status string, completed bool) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("status", status),
		attribute.Bool("completed", completed),
	)
	if o.applyCounter != nil {
		o.applyCounter.Add(ctx, 1, attrs)
	}
	if o.applyDuration != nil {
		o.applyDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
