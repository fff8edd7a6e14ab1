package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var handlerTracer = otel.Tracer("footy-career/httpapi")

// startHandlerSpan opens a span for one career endpoint under the request span
// that RequestTracing started. Filtered routes such as /healthz get no span.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}

	attrs := []attribute.KeyValue{attribute.String("http.route", r.Pattern)}
	if slotID := r.PathValue("slotID"); slotID != "" {
		attrs = append(attrs, attribute.String("career.slot_id", slotID))
	}
	return handlerTracer.Start(ctx, "handler."+name, trace.WithAttributes(attrs...))
}

// markSpanFailed flags the active span when a request ends in a server-side error.
func markSpanFailed(ctx context.Context, err error, status int, reason string) {
	if status < http.StatusInternalServerError {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
}
