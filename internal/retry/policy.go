package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy holds exponential backoff settings for transient content-store failures.
// It is immutable after construction.
type Policy struct {
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // retry attempts after the first failure
	// Jitter is the fraction (0..1) of each delay that is randomized.
	Jitter float64
}

// DefaultPolicy retries nothing; callers opt in through configuration.
func DefaultPolicy() Policy {
	return Policy{Initial: 200 * time.Millisecond, Max: 2 * time.Second, MaxRetries: 0, Jitter: 0.5}
}

// NewPolicy builds a policy from raw config fields; zero/invalid values fall back to defaults.
func NewPolicy(initial time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries > 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if p.Initial > p.Max {
		p.Max = p.Initial
	}
	return p
}

// Delay returns the backoff for the given retry (1-based) before jitter.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	d := p.Initial
	for i := 1; i < retryCount; i++ {
		d *= 2
		if d >= p.Max {
			return p.Max
		}
	}
	return d
}

func (p Policy) jittered(retryCount int) time.Duration {
	d := p.Delay(retryCount)
	if p.Jitter <= 0 || d <= 0 {
		return d
	}
	spread := time.Duration(float64(d) * p.Jitter)
	return d - spread + time.Duration(rand.Int64N(int64(spread)+1))
}

// Validate ensures invariants; returns error if policy impossible to apply.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial must be >0")
	}
	if p.Max < p.Initial {
		return fmt.Errorf("max must be >= initial")
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if p.Jitter < 0 || p.Jitter > 1 {
		return fmt.Errorf("jitter must be within [0,1]")
	}
	return nil
}

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p)
}

// Do runs fn until it succeeds, returns a permanent error, the retries are
// exhausted or ctx is done. The last error is returned unwrapped.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		var perm permanent
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= p.MaxRetries {
			return err
		}
		t := time.NewTimer(p.jittered(attempt + 1))
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.Join(err, ctx.Err())
		case <-t.C:
		}
	}
}
