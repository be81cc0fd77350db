package tracing

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func parentContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestScope_NoRootSpans(t *testing.T) {
	scope := NewScope("test", nil)
	ctx := context.Background()

	got, span := scope.Start(ctx, "usecase.RankingService.Recompute")
	defer span.End()
	if got != ctx {
		t.Fatalf("expected context to pass through without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span")
	}
}

func TestScope_FiltersNames(t *testing.T) {
	scope := NewScope("test", func(name string) bool {
		return strings.HasPrefix(name, "httpapi.Handler.")
	})
	ctx := parentContext()

	got, _ := scope.Start(ctx, "httpapi.writeError")
	if got != ctx {
		t.Fatalf("filtered span should not derive a context")
	}
	got, _ = scope.Start(ctx, "  ")
	if got != ctx {
		t.Fatalf("blank span name should not derive a context")
	}
}

func TestFormatQuery(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "empty", in: "  ", limit: 10, want: ""},
		{
			name:  "collapses whitespace",
			in:    " SELECT   *\nFROM predictions \t WHERE participant_name = $1 ",
			limit: 512,
			want:  "SELECT * FROM predictions WHERE participant_name = $1",
		},
		{name: "truncates", in: "SELECT id FROM rankings", limit: 9, want: "SELECT id..."},
		{name: "no limit", in: "SELECT id FROM rankings", limit: 0, want: "SELECT id FROM rankings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQuery(tt.in, tt.limit); got != tt.want {
				t.Fatalf("FormatQuery(%q, %d)=%q want=%q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
