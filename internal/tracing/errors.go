package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorType classifies recorded errors so they can be filtered in traces.
type ErrorType string

const (
	// ErrorTypeHTTP HTTP-layer error
	ErrorTypeHTTP ErrorType = "http"
	// ErrorTypeDB database error
	ErrorTypeDB ErrorType = "db"
	// ErrorTypeRedis Redis error
	ErrorTypeRedis ErrorType = "redis"
	// ErrorTypeObjectStore object storage error
	ErrorTypeObjectStore ErrorType = "object_store"
	// ErrorTypeValidation request validation error
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInternal internal error
	ErrorTypeInternal ErrorType = "internal"
)

// RecordError records err on span with a uniform error classification.
func RecordError(span trace.Span, err error, errorType ErrorType) {
	if span == nil || err == nil {
		return
	}

	span.RecordError(err)
	span.SetAttributes(
		attribute.String("error.type", string(errorType)),
		attribute.String("error.message", err.Error()),
	)
	span.SetStatus(codes.Error, err.Error())
}

// RecordErrorWithInfo records err with additional attributes.
func RecordErrorWithInfo(span trace.Span, err error, errorType ErrorType, attributes ...attribute.KeyValue) {
	if span == nil || err == nil {
		return
	}

	span.RecordError(err)
	span.SetAttributes(
		attribute.String("error.type", string(errorType)),
		attribute.String("error.message", err.Error()),
	)
	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}
	span.SetStatus(codes.Error, err.Error())
}
