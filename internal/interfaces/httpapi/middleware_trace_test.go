package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsHealthPath(t *testing.T) {
	tests := map[string]bool{
		"/healthz":      true,
		" /HEALTHZ ":    true,
		"/livez":        true,
		"/readyz":       true,
		"/v1/rankings":  false,
		"/v1/standings": false,
		"/":             false,
	}
	for path, want := range tests {
		if got := isHealthPath(path); got != want {
			t.Fatalf("isHealthPath(%q)=%v want=%v", path, got, want)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get(requestIDHeader) != "abc-123" {
		t.Fatalf("inbound request id not reused: ctx=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", 200))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if len(seen) != 36 || rec.Header().Get(requestIDHeader) != seen {
		t.Fatalf("expected a minted uuid, got %q", seen)
	}
}

func TestRequestLogging_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))

	statuses := map[string]int{
		"/v1/rankings":           http.StatusOK,
		"/v1/tables/T99/bonus":   http.StatusBadRequest,
		"/v1/rankings/recompute": http.StatusInternalServerError,
		"/healthz":               http.StatusOK,
	}
	handler := RequestID(RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statuses[r.URL.Path])
		_, _ = w.Write([]byte("ok"))
	})))

	want := map[string]zapcore.Level{
		"/v1/rankings":           zapcore.InfoLevel,
		"/v1/tables/T99/bonus":   zapcore.WarnLevel,
		"/v1/rankings/recompute": zapcore.ErrorLevel,
		"/healthz":               zapcore.DebugLevel,
	}
	for path, level := range want {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("%s: expected one log entry, got %d", path, len(entries))
		}
		if entries[0].Level != level {
			t.Fatalf("%s: unexpected level %v want %v", path, entries[0].Level, level)
		}
		fields := entries[0].ContextMap()
		if fields["bytes"] != int64(2) || fields["request_id"] == "" {
			t.Fatalf("%s: unexpected fields %+v", path, fields)
		}
	}
}
