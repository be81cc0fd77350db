package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_Do(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	errNotFound := errors.New("not found")
	errUpstream := errors.New("upstream down")
	isFailure := func(err error) bool { return !errors.Is(err, errNotFound) }

	if err := b.Do(func() error { return errNotFound }, isFailure); !errors.Is(err, errNotFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after ignored error, got %s", state)
	}

	if err := b.Do(func() error { return errUpstream }, isFailure); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	called := false
	if err := b.Do(func() error { called = true; return nil }, isFailure); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if called {
		t.Fatalf("expected fn to be skipped while open")
	}
}

func TestCircuitBreakerConfig_BuildDisabled(t *testing.T) {
	if b := (CircuitBreakerConfig{}).Build(); b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := (*CircuitBreaker)(nil).Do(func() error { return nil }, nil); err != nil {
		t.Fatalf("expected nil breaker to run fn, got %v", err)
	}
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	now := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)
	var transitions []string
	b := NewCircuitBreaker(1, time.Second, 1).OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected second probe to pass: %v", err)
	}
	b.RecordSuccess()

	want := []string{"closed->open", "open->half_open", "half_open->open", "open->half_open", "half_open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: got=%s want=%s", i, transitions[i], want[i])
		}
	}
}
