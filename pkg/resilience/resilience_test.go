package resilience

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	perrors "github.com/praxislabs/praxis/pkg/errors"
)

func fastRetry() RetryConfig {
	return DefaultRetryConfig().WithInitialDelay(time.Millisecond)
}

func TestRetryEventualSuccess(t *testing.T) {
	attempts := 0
	err := fastRetry().Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return stderrors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryMaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	err := fastRetry().WithMaxAttempts(2).Do(context.Background(), func() error {
		attempts++
		return stderrors.New("always fails")
	})

	if err == nil {
		t.Error("expected error after max attempts")
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryPermanentErrorStopsImmediately(t *testing.T) {
	attempts := 0
	permanent := perrors.New(perrors.CodeInvalidInput, "bad address", nil) // Recoverable defaults to false
	err := fastRetry().Do(context.Background(), func() error {
		attempts++
		return permanent
	})

	if err != permanent {
		t.Errorf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("permanent error must not retry, got %d attempts", attempts)
	}
}

func TestRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultRetryConfig().WithInitialDelay(time.Minute).Do(ctx, func() error {
		return stderrors.New("transient")
	})

	if perrors.CodeOf(err) != perrors.CodeTimeout {
		t.Errorf("expected timeout code, got %v", err)
	}
}

func TestDoWithResult(t *testing.T) {
	got, err := fastRetry().DoWithResult(context.Background(), func() (interface{}, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("unexpected result: %v %v", got, err)
	}
}

func TestWithTimeoutExceeded(t *testing.T) {
	err := WithTimeout(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if perrors.CodeOf(err) != perrors.CodeTimeout {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestWithTimeoutZeroDisables(t *testing.T) {
	called := false
	err := WithTimeout(context.Background(), 0, func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("zero duration should run fn inline: %v", err)
	}
}
