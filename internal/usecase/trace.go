package usecase

import (
	"context"

	"github.com/riskibarqy/toto-league/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracing = tracing.NewScope("toto-league/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return usecaseTracing.Start(ctx, name, attrs...)
}
