package ratelimit

import "time"

// Clock abstracts wall time so window arithmetic is testable with a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation used in production.
func SystemClock() Clock { return systemClock{} }
