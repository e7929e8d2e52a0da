package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithExponentialBackoff_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithExponentialBackoff_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithExponentialBackoff_FatalNotRetried(t *testing.T) {
	t.Parallel()
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return Fatal(errors.New("bad parameter"))
	}, WithInitialDelay(time.Millisecond))
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("fatal error should not be retried, got %d calls", calls)
	}
}

func TestWithExponentialBackoff_ExhaustsRetries(t *testing.T) {
	t.Parallel()
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return errors.New("always failing")
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond), WithMaxDelay(time.Millisecond))
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", calls)
	}
}

func TestPoll_DoneOnFirstAttempt(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), 10, time.Second, func() (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestPoll_DoneAfterSeveralAttempts(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), 10, time.Millisecond, func() (bool, error) {
		calls++
		return calls == 4, nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestPoll_AttemptsExhausted(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), 3, time.Millisecond, func() (bool, error) {
		calls++
		return false, nil
	})
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected exactly 3 calls, got %d", calls)
	}
}

func TestPoll_ConditionErrorStopsPolling(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	calls := 0
	err := Poll(context.Background(), 10, time.Millisecond, func() (bool, error) {
		calls++
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected condition error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("condition error should stop polling, got %d calls", calls)
	}
}

func TestPoll_InvalidAttempts(t *testing.T) {
	t.Parallel()
	err := Poll(context.Background(), 0, time.Millisecond, func() (bool, error) {
		return true, nil
	})
	if err == nil {
		t.Fatal("expected error for zero attempts")
	}
}

func TestPoll_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Poll(ctx, 5, 10*time.Second, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPoll_WorstCaseDuration(t *testing.T) {
	t.Parallel()
	interval := 5 * time.Millisecond
	attempts := 4

	start := time.Now()
	err := Poll(context.Background(), attempts, interval, func() (bool, error) {
		return false, nil
	})
	elapsed := time.Since(start)

	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}

	// No sleep follows the final attempt.
	budget := time.Duration(attempts) * interval
	if elapsed > budget {
		t.Errorf("polling took %v, budget is %v", elapsed, budget)
	}
}
