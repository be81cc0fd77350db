package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/toto-league/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Only handler spans are recorded; middleware and response helpers ride on
// the otelhttp server span.
var apiTracing = tracing.NewScope("toto-league/internal/interfaces/httpapi", isHandlerSpan)

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return apiTracing.Start(ctx, name, attrs...)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
