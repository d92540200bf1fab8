package middleware

import (
	"strconv"
	"time"

	"github.com/chatline/report-backend/internal/dto"
	"github.com/chatline/report-backend/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
)

// KeyFunc extracts the client identity admission decisions are keyed by.
type KeyFunc func(c *fiber.Ctx) string

// ClientIP keys admission decisions by the requester's IP address.
func ClientIP(c *fiber.Ctx) string { return c.IP() }

// SlowDown applies progressive backpressure: once a client exceeds the
// throttle's threshold, its requests are stalled before reaching the next
// handler. Requests are never rejected here, and a started wait always runs
// to completion, so in-flight requests still finish during shutdown drain.
func SlowDown(throttle *ratelimit.Throttle, key KeyFunc) fiber.Handler {
	if key == nil {
		key = ClientIP
	}
	return func(c *fiber.Ctx) error {
		d := throttle.CheckAndIncrement(key(c))
		if d.Verdict == ratelimit.Delay && d.Delay > 0 {
			time.Sleep(d.Delay)
		}
		return c.Next()
	}
}

// RateLimit enforces a hard fixed-window limit. Rejected requests get a 429
// failure envelope with a retryAfter hint and a Retry-After header; admitted
// requests carry the X-RateLimit-* headers of the deciding window.
func RateLimit(limiter *ratelimit.Limiter, key KeyFunc, message, retryAfterHint string) fiber.Handler {
	if key == nil {
		key = ClientIP
	}
	if message == "" {
		message = "Too many requests, please try again later."
	}
	return func(c *fiber.Ctx) error {
		d := limiter.CheckAndIncrement(key(c))
		if d.Verdict == ratelimit.Reject {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(d.RetryAfter)))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Success:    false,
				Error:      message,
				RetryAfter: retryAfterHint,
			})
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))
		return c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(d.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}
