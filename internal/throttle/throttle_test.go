package throttle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestThrottle_FirstAcquireDoesNotWait(t *testing.T) {
	th := New(time.Hour)

	start := time.Now()
	if err := th.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Acquire waited %v, want no wait", elapsed)
	}
	if !th.NextAllowed().IsZero() {
		t.Errorf("NextAllowed() = %v, want zero before any dispatch", th.NextAllowed())
	}
}

func TestThrottle_SpacingFromCompletion(t *testing.T) {
	const interval = 60 * time.Millisecond
	th := New(interval)

	var starts, ends []time.Time
	for i := 0; i < 4; i++ {
		err := th.Do(context.Background(), func(ctx context.Context) error {
			starts = append(starts, time.Now())
			time.Sleep(20 * time.Millisecond) // simulated request
			ends = append(ends, time.Now())
			return nil
		})
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	}

	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(ends[i-1])
		if gap < interval-5*time.Millisecond {
			t.Errorf("gap before request %d = %v, want >= %v", i, gap, interval)
		}
	}
}

func TestThrottle_FailedRequestStillMarks(t *testing.T) {
	const interval = 50 * time.Millisecond
	th := New(interval)
	boom := errors.New("boom")

	err := th.Do(context.Background(), func(ctx context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Do error = %v, want %v", err, boom)
	}
	end := time.Now()

	if next := th.NextAllowed(); next.Before(end.Add(interval - 5*time.Millisecond)) {
		t.Errorf("NextAllowed() = %v, want about %v", next, end.Add(interval))
	}

	if err := th.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if waited := time.Since(end); waited < interval-5*time.Millisecond {
		t.Errorf("Acquire after failure waited %v, want >= %v", waited, interval)
	}
}

func TestThrottle_ContextCancel(t *testing.T) {
	th := New(time.Hour)
	th.MarkDispatched()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var called bool
	err := th.Do(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if called {
		t.Error("fn should not run when Acquire fails")
	}
}

func TestThrottle_AcquireDoesNotConsumeGate(t *testing.T) {
	const interval = 60 * time.Millisecond
	th := New(interval)
	th.MarkDispatched()

	time.Sleep(interval + 30*time.Millisecond)
	if next := th.NextAllowed(); next.After(time.Now()) {
		t.Fatalf("NextAllowed() = %v, want a past instant", next)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 30*time.Millisecond {
		t.Errorf("three Acquires past the gate took %v, want no wait", elapsed)
	}
}

func TestThrottle_AcquireWaitsOutDeadline(t *testing.T) {
	th := New(time.Hour)
	th.MarkDispatched()

	const timeout = 40 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := th.Acquire(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Acquire error = %v, want %v", err, context.DeadlineExceeded)
	}
	if elapsed := time.Since(start); elapsed < timeout-5*time.Millisecond {
		t.Errorf("Acquire returned after %v, want it to wait for the %v deadline", elapsed, timeout)
	}
}

func TestThrottle_ZeroIntervalNeverWaits(t *testing.T) {
	th := New(0)

	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := th.Do(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("50 requests took %v with zero interval", elapsed)
	}
}

func TestThrottle_ConcurrentCallersSerialized(t *testing.T) {
	const interval = 30 * time.Millisecond
	th := New(interval)

	var (
		inFlight    atomic.Int32
		maxInFlight atomic.Int32
		mu          sync.Mutex
		starts      []time.Time
		ends        []time.Time
		wg          sync.WaitGroup
	)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.Do(context.Background(), func(ctx context.Context) error {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					old := maxInFlight.Load()
					if n <= old || maxInFlight.CompareAndSwap(old, n) {
						break
					}
				}

				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				ends = append(ends, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if got := maxInFlight.Load(); got != 1 {
		t.Errorf("maxInFlight = %d, want 1", got)
	}
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(ends[i-1]); gap < interval-5*time.Millisecond {
			t.Errorf("gap before request %d = %v, want >= %v", i, gap, interval)
		}
	}
}

func TestThrottle_Observer(t *testing.T) {
	var waits []time.Duration
	th := New(40*time.Millisecond, WithObserver(func(d time.Duration) {
		waits = append(waits, d)
	}))

	for i := 0; i < 2; i++ {
		if err := th.Do(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}

	if len(waits) != 2 {
		t.Fatalf("len(waits) = %d, want 2", len(waits))
	}
	if waits[1] < 30*time.Millisecond {
		t.Errorf("second wait = %v, want about 40ms", waits[1])
	}
}

func TestThrottle_SetInterval(t *testing.T) {
	th := New(time.Hour)
	th.SetInterval(10 * time.Millisecond)

	if th.Interval() != 10*time.Millisecond {
		t.Errorf("Interval() = %v, want 10ms", th.Interval())
	}

	th.MarkDispatched()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := th.Acquire(ctx); err != nil {
		t.Errorf("Acquire after SetInterval: %v", err)
	}
}
