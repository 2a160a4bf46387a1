package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for application spans.
const TracerName = "portal-backend"

// Span attribute keys for portal-specific context.
const (
	AttrUserID       = "portal.user_id"
	AttrActorRole    = "portal.actor_role"
	AttrProjectID    = "portal.project_id"
	AttrDocumentID   = "portal.document_id"
	AttrPhotoID      = "portal.photo_id"
	AttrNotification = "portal.notification_kind"
	AttrOperation    = "portal.operation"
)

// StartSpan starts a new span with the given name and options.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, spanName, opts...)
}

// StartServiceSpan starts a span for an application service operation.
func StartServiceSpan(ctx context.Context, service, operation string) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("%s.%s", service, operation)
	return StartSpan(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String(AttrOperation, operation)),
	)
}

// SetAttributes sets attributes on the span in the current context.
func SetAttributes(ctx context.Context, attrs map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	for k, v := range attrs {
		span.SetAttributes(toAttribute(k, v))
	}
}

// RecordError records an error on the span and marks it as failed.
func RecordError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddEvent adds a named event to the span in the current context.
func AddEvent(ctx context.Context, name string, attrs map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	var kvs []attribute.KeyValue
	for k, v := range attrs {
		kvs = append(kvs, toAttribute(k, v))
	}
	span.AddEvent(name, trace.WithAttributes(kvs...))
}

// GetTraceID returns the trace ID of the current span, or empty string when absent.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
