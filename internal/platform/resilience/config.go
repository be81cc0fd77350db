package resilience

import "time"

// CircuitBreakerConfig is the env-facing breaker shape. Zero thresholds fall
// back to 5 failures, a 15s open window and 2 half-open probes.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// Build returns nil when the breaker is disabled.
func (cfg CircuitBreakerConfig) Build() *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return NewCircuitBreaker(
		orDefault(cfg.FailureThreshold, 5),
		orDefault(cfg.OpenTimeout, 15*time.Second),
		orDefault(cfg.HalfOpenMaxReq, 2),
	)
}

func orDefault[T int | time.Duration](v, fallback T) T {
	if v <= 0 {
		return fallback
	}
	return v
}
