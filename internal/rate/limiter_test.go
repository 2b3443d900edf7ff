package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(NewRedisStore(rdb), Config{MaxAttempts: 5, LockoutWindow: 15 * time.Minute}), mr
}

func newMemoryLimiter() *Limiter {
	return New(NewMemoryStore(), Config{MaxAttempts: 5, LockoutWindow: 15 * time.Minute})
}

func recordFailures(t *testing.T, l *Limiter, identifier string, n int) Status {
	t.Helper()

	var last Status
	for i := 0; i < n; i++ {
		status, err := l.RecordAttempt(context.Background(), identifier, false)
		if err != nil {
			t.Fatalf("record attempt %d: %v", i+1, err)
		}
		last = status
	}
	return last
}

func TestLimiterBlocksAfterMaxFailures(t *testing.T) {
	backends := map[string]*Limiter{"memory": newMemoryLimiter()}
	redisLimiter, _ := newRedisLimiter(t)
	backends["redis"] = redisLimiter

	for name, limiter := range backends {
		t.Run(name, func(t *testing.T) {
			for i := 1; i <= 4; i++ {
				status, err := limiter.RecordAttempt(context.Background(), "10.0.0.1", false)
				if err != nil {
					t.Fatalf("record attempt %d: %v", i, err)
				}
				if !status.Allowed {
					t.Fatalf("attempt %d should still be allowed", i)
				}
				if status.Remaining != 5-i {
					t.Fatalf("attempt %d: remaining = %d, want %d", i, status.Remaining, 5-i)
				}
			}

			status := recordFailures(t, limiter, "10.0.0.1", 1)
			if status.Allowed {
				t.Fatal("fifth failure must exhaust the budget")
			}
			if status.RetryAfter <= 0 {
				t.Fatalf("expected a positive retry-after, got %v", status.RetryAfter)
			}

			check, err := limiter.Check(context.Background(), "10.0.0.1")
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if check.Allowed {
				t.Fatal("locked identifier must be rejected before credentials are checked")
			}
		})
	}
}

func TestLimiterSuccessResetsCounter(t *testing.T) {
	limiter := newMemoryLimiter()
	recordFailures(t, limiter, "10.0.0.2", 4)

	status, err := limiter.RecordAttempt(context.Background(), "10.0.0.2", true)
	if err != nil {
		t.Fatalf("record success: %v", err)
	}
	if !status.Allowed || status.Remaining != 5 {
		t.Fatalf("success must reset the counter, got %+v", status)
	}

	status = recordFailures(t, limiter, "10.0.0.2", 1)
	if !status.Allowed || status.Remaining != 4 {
		t.Fatalf("failure after reset must not be blocked, got %+v", status)
	}
}

func TestLimiterIdentifiersAreIndependent(t *testing.T) {
	limiter := newMemoryLimiter()
	recordFailures(t, limiter, "10.0.0.3", 5)

	status, err := limiter.Check(context.Background(), "10.0.0.4")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !status.Allowed || status.Remaining != 5 {
		t.Fatalf("unrelated identifier must be unaffected, got %+v", status)
	}
}

func TestLimiterWindowExpiryUnlocks(t *testing.T) {
	limiter, mr := newRedisLimiter(t)
	recordFailures(t, limiter, "10.0.0.5", 5)

	mr.FastForward(15*time.Minute + time.Second)

	status, err := limiter.Check(context.Background(), "10.0.0.5")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !status.Allowed {
		t.Fatal("identifier must unlock once the window passes")
	}
}

func TestLimiterFailsClosedWhenStoreIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	limiter := New(NewRedisStore(rdb), Config{MaxAttempts: 5, LockoutWindow: 15 * time.Minute})

	mr.Close()

	if _, err := limiter.Check(context.Background(), "10.0.0.6"); err == nil {
		t.Fatal("expected an error when the store is unreachable")
	}
	if _, err := limiter.RecordAttempt(context.Background(), "10.0.0.6", false); err == nil {
		t.Fatal("expected an error when the store is unreachable")
	}
}

func TestLimiterConcurrentIncrements(t *testing.T) {
	limiter := newMemoryLimiter()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = limiter.RecordAttempt(context.Background(), "10.0.0.7", false)
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	status, err := limiter.Check(context.Background(), "10.0.0.7")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if status.Allowed {
		t.Fatal("ten racing failures must leave the identifier locked")
	}
}
