package ratelimit

import "time"

// Verdict classifies the admission decision for one request.
type Verdict int

const (
	// Allow admits the request immediately.
	Allow Verdict = iota
	// Delay admits the request after Decision.Delay has elapsed.
	Delay
	// Reject refuses the request until the window resets.
	Reject
)

// Decision is the outcome of a single CheckAndIncrement call.
type Decision struct {
	Verdict Verdict

	// Delay is how long to stall before proceeding. Set when Verdict is Delay.
	Delay time.Duration

	// Limit and Remaining describe the deciding window. Set by Limiter.
	Limit     int
	Remaining int

	// Reset is the instant the current window expires.
	Reset time.Time

	// RetryAfter is the time left until Reset. Set when Verdict is Reject.
	RetryAfter time.Duration
}

// LimiterConfig configures a Limiter. Zero values fall back to defaults.
type LimiterConfig struct {
	// Max is the number of requests admitted per identity per window.
	Max int

	// Window is the fixed window length.
	Window time.Duration

	// Clock defaults to the system clock.
	Clock Clock
}

// Limiter is a hard fixed-window rate limit: once an identity exhausts Max
// requests inside a window, further requests are rejected until the window
// resets.
type Limiter struct {
	counter *counter
	clock   Clock
	max     int
}

func NewLimiter(cfg LimiterConfig) *Limiter {
	if cfg.Max <= 0 {
		cfg.Max = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	return &Limiter{
		counter: newCounter(cfg.Window, cfg.Clock),
		clock:   cfg.Clock,
		max:     cfg.Max,
	}
}

// CheckAndIncrement records one request for identity and decides whether it
// may proceed.
func (l *Limiter) CheckAndIncrement(identity string) Decision {
	count, reset := l.counter.increment(identity)
	if count > l.max {
		return Decision{
			Verdict:    Reject,
			Limit:      l.max,
			Reset:      reset,
			RetryAfter: reset.Sub(l.clock.Now()),
		}
	}
	return Decision{
		Verdict:   Allow,
		Limit:     l.max,
		Remaining: l.max - count,
		Reset:     reset,
	}
}

// Stop terminates the background sweeper. Must be called exactly once.
func (l *Limiter) Stop() { l.counter.stop() }
