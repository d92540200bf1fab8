package ratelimit

import "time"

// ThrottleConfig configures a Throttle. Zero values fall back to defaults.
type ThrottleConfig struct {
	// After is the number of in-window requests admitted without delay.
	After int

	// Step is the delay added per in-window request once After is exceeded.
	Step time.Duration

	// MaxDelay caps a single computed delay. Zero means uncapped.
	MaxDelay time.Duration

	// Window is the fixed window length.
	Window time.Duration

	// Clock defaults to the system clock.
	Clock Clock
}

// Throttle is the progressive slow-down stage. It never rejects: once an
// identity has made more than After requests inside a window, each further
// request is admitted after a delay of count*Step.
type Throttle struct {
	counter  *counter
	after    int
	step     time.Duration
	maxDelay time.Duration
}

func NewThrottle(cfg ThrottleConfig) *Throttle {
	if cfg.After <= 0 {
		cfg.After = 5
	}
	if cfg.Step <= 0 {
		cfg.Step = 500 * time.Millisecond
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	return &Throttle{
		counter:  newCounter(cfg.Window, cfg.Clock),
		after:    cfg.After,
		step:     cfg.Step,
		maxDelay: cfg.MaxDelay,
	}
}

// CheckAndIncrement records one request for identity and returns either an
// immediate Allow or a Delay proportional to the in-window request count.
func (t *Throttle) CheckAndIncrement(identity string) Decision {
	count, reset := t.counter.increment(identity)
	if count <= t.after {
		return Decision{Verdict: Allow, Reset: reset}
	}
	delay := time.Duration(count) * t.step
	if t.maxDelay > 0 && delay > t.maxDelay {
		delay = t.maxDelay
	}
	return Decision{Verdict: Delay, Delay: delay, Reset: reset}
}

// Stop terminates the background sweeper. Must be called exactly once.
func (t *Throttle) Stop() { t.counter.stop() }
