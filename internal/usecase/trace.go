package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var careerTracer = otel.Tracer("footy-career/usecase")

// startSpan opens a child of the request span. Calls without one, such as
// balance runs from the CLI, reuse the inert span already in ctx.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return careerTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
