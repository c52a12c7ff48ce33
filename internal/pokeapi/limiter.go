package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// adaptiveLimiter throttles outgoing requests. The rate climbs back by
// stepUp after successes and is multiplied by stepDown on 429/5xx, never
// leaving [min, max].
type adaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

func newAdaptiveLimiter(initial float64) *adaptiveLimiter {
	if initial < 1 {
		initial = 1
	}
	return &adaptiveLimiter{
		limiter:  rate.NewLimiter(rate.Limit(initial), max(1, int(initial))),
		min:      1,
		max:      rate.Limit(initial),
		stepUp:   1,
		stepDown: 0.5,
	}
}

func (a *adaptiveLimiter) wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

func (a *adaptiveLimiter) success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.adjust(a.limiter.Limit() + a.stepUp)
	}
}

func (a *adaptiveLimiter) throttled() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.adjust(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

func (a *adaptiveLimiter) current() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

func (a *adaptiveLimiter) adjust(l rate.Limit) {
	l = min(max(l, a.min), a.max)
	if l != a.limiter.Limit() {
		a.limiter.SetLimit(l)
		a.limiter.SetBurst(max(1, int(l)))
	}
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http %d", e.URL, e.Code)
}

func (e *StatusError) StatusCode() int { return e.Code }

func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

type retryConfig struct {
	attempts     int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

func defaultRetryConfig(attempts int) retryConfig {
	return retryConfig{
		attempts:     max(1, attempts),
		initialDelay: 250 * time.Millisecond,
		maxDelay:     5 * time.Second,
		multiplier:   2,
	}
}

// withRetry runs fn until it succeeds, fails permanently, ctx ends or the
// attempts run out. Only 429, 5xx and transport errors are retried.
func withRetry(ctx context.Context, log zerolog.Logger, lim *adaptiveLimiter, cfg retryConfig, fn func() error) error {
	delay := cfg.initialDelay
	var err error

	for attempt := 1; attempt <= cfg.attempts; attempt++ {
		if err := lim.wait(ctx); err != nil {
			return err
		}

		if err = fn(); err == nil {
			lim.success()
			if attempt > 1 {
				log.Debug().Int("attempt", attempt).Float64("rps", lim.current()).Msg("request recovered")
			}
			return nil
		}

		var se *StatusError
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrMalformed):
			return err
		case errors.As(err, &se):
			if !se.retryable() {
				return err
			}
			lim.throttled()
		}

		if attempt == cfg.attempts {
			break
		}
		log.Debug().Err(err).Int("attempt", attempt).Dur("sleep", delay).Msg("request failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jitter(delay)):
		}
		delay = min(time.Duration(float64(delay)*cfg.multiplier), cfg.maxDelay)
	}

	return fmt.Errorf("giving up after %d attempts: %w", cfg.attempts, err)
}

func jitter(d time.Duration) time.Duration {
	if d < 4 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d/4)))
}
