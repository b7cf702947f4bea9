package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between requests.
const DefaultInterval = 1500 * time.Millisecond

// Throttle is a single gate shared by every request of one client.
type Throttle struct {
	// serial is held by Do for the whole acquire/request/mark sequence.
	serial sync.Mutex

	mu       sync.Mutex
	interval time.Duration
	lim      *rate.Limiter
	next     time.Time

	observe func(wait time.Duration)
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithObserver registers a callback receiving the time spent waiting in
// each Acquire.
func WithObserver(fn func(wait time.Duration)) Option {
	return func(t *Throttle) {
		t.observe = fn
	}
}

// New creates a throttle with the given minimum interval. An interval <= 0
// disables waiting.
func New(interval time.Duration, opts ...Option) *Throttle {
	t := &Throttle{
		interval: interval,
		lim:      rate.NewLimiter(rate.Every(interval), 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interval returns the current minimum interval.
func (t *Throttle) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// SetInterval changes the minimum interval. It takes effect from the next
// completed request.
func (t *Throttle) SetInterval(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = d
}

// NextAllowed returns the earliest instant the next request may start.
// The zero time means no request has completed yet.
func (t *Throttle) NextAllowed() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

// Acquire blocks until the next request may start. It returns immediately if
// that instant has passed. Acquire only reads the gate, so repeated calls
// without MarkDispatched do not wait on each other. If ctx is done first its
// error is returned.
func (t *Throttle) Acquire(ctx context.Context) error {
	t.mu.Lock()
	lim := t.lim
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	// Reserve and hand the token straight back to learn the delay without
	// consuming the gate.
	start := time.Now()
	r := lim.ReserveN(start, 1)
	wait := r.DelayFrom(start)
	r.CancelAt(start)

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if t.observe != nil {
		t.observe(time.Since(start))
	}
	return nil
}

// MarkDispatched records that a request just completed, successfully or not.
// The next Acquire waits until now + interval.
func (t *Throttle) MarkDispatched() {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	// A fresh burst-1 limiter drained at completion time refills exactly one
	// interval from now.
	lim := rate.NewLimiter(rate.Every(t.interval), 1)
	lim.AllowN(now, 1)
	t.lim = lim
	t.next = now.Add(t.interval)
}

// Do runs fn between Acquire and MarkDispatched. Concurrent callers are
// serialized so at most one fn runs at a time.
func (t *Throttle) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.serial.Lock()
	defer t.serial.Unlock()

	if err := t.Acquire(ctx); err != nil {
		return err
	}
	defer t.MarkDispatched()

	return fn(ctx)
}
