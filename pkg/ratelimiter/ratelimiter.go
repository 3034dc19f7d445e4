package ratelimiter

import "time"

// RateLimiter is the interface for rate limiting.
// It defines a single method, Allow, which returns true if a request is allowed,
// and false otherwise.
type RateLimiter interface {
	// Allow returns true if the request is allowed, otherwise returns false.
	Allow() bool
}

// New creates a RateLimiter for the named algorithm. Rate is in requests per
// second; capacity is the burst size (or the per-second request limit for the
// window based algorithms). Unknown names fall back to the token bucket.
func New(algorithm string, rate float64, capacity int) RateLimiter {
	window := time.Second
	switch algorithm {
	case "leaky_bucket":
		return NewLeakyBucket(rate, capacity)
	case "sliding_window_log":
		return NewSlidingWindowLog(capacity, window)
	case "sliding_window_counter":
		return NewSlidingWindowCounter(capacity, window, 10)
	case "counter":
		return NewFixedWindowCounter(capacity, window)
	default:
		return NewTokenBucket(rate, capacity)
	}
}
