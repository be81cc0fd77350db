// Package tracing holds the span helpers shared by the api and usecase layers.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Scope starts child spans under one instrumentation name. It never starts a
// root span, so untraced requests (health checks) stay untraced all the way
// down.
type Scope struct {
	tracer trace.Tracer
	keep   func(spanName string) bool
}

// NewScope builds a scope; keep filters span names and may be nil.
func NewScope(instrumentation string, keep func(spanName string) bool) Scope {
	return Scope{tracer: otel.Tracer(instrumentation), keep: keep}
}

func (s Scope) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" || s.tracer == nil {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if s.keep != nil && !s.keep(name) {
		return ctx, noopSpan
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// FormatQuery collapses whitespace in a SQL statement and truncates it to
// limit bytes for span attributes. A non-positive limit disables truncation.
func FormatQuery(query string, limit int) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if limit <= 0 || len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit] + "..."
}
