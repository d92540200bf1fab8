// Package ratelimit implements the in-memory admission control in front of
// the HTTP handlers: fixed-window request counting per client identity,
// consumed by a hard limiter and a progressive slow-down throttle.
package ratelimit

import (
	"sync"
	"time"
)

const sweepInterval = time.Minute

type windowState struct {
	count       int
	windowStart time.Time
}

// counter is a concurrency-safe fixed-window counter keyed by client
// identity. Counts reset once the window elapses; stale identities are
// swept by a background goroutine until Stop is called.
type counter struct {
	mu      sync.Mutex
	entries map[string]*windowState

	clock  Clock
	window time.Duration

	ticker *time.Ticker
	done   chan struct{}
}

func newCounter(window time.Duration, clock Clock) *counter {
	c := &counter{
		entries: make(map[string]*windowState),
		clock:   clock,
		window:  window,
		ticker:  time.NewTicker(sweepInterval),
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// increment records one request for identity and returns the in-window
// count together with the instant the current window resets.
func (c *counter) increment(identity string) (count int, reset time.Time) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.entries[identity]
	if !ok || now.Sub(st.windowStart) >= c.window {
		st = &windowState{windowStart: now}
		c.entries[identity] = st
	}
	st.count++
	return st.count, st.windowStart.Add(c.window)
}

func (c *counter) sweepLoop() {
	for {
		select {
		case <-c.ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *counter) sweep() {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, st := range c.entries {
		if now.Sub(st.windowStart) > 2*c.window {
			delete(c.entries, id)
		}
	}
}

// stop terminates the sweeper. Must be called exactly once.
func (c *counter) stop() {
	c.ticker.Stop()
	close(c.done)
}
