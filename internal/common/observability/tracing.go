package observability

import (
	"context"
	"time"

	"applicant-forms/internal/common/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracing owns the process tracer provider. Spans are not exported; their ids
// correlate log lines belonging to one batch of session events.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewTracing installs a global tracer provider sampling at cfg.SampleRatio.
func NewTracing(cfg config.TracingConfig, serviceName string) *Tracing {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetTracerProvider(provider)
	return &Tracing{provider: provider}
}

func (t *Tracing) Shutdown() {
	if t == nil || t.provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = t.provider.Shutdown(ctx)
}

// TraceFields returns log fields identifying the span in ctx, or nil when ctx
// carries no valid span.
func TraceFields(ctx context.Context) map[string]interface{} {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return map[string]interface{}{
		"traceId": sc.TraceID().String(),
		"spanId":  sc.SpanID().String(),
	}
}
