package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCompleteWithRetrySucceedsAfterRetry(t *testing.T) {
	calls := 0
	text, err := completeWithRetry(context.Background(), 1, time.Millisecond, func() (string, error) {
		calls++
		if calls == 1 {
			return "", fmt.Errorf("transient failure")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if text != "ok" || calls != 2 {
		t.Fatalf("expected second call to answer, got text=%q calls=%d", text, calls)
	}
}

func TestCompleteWithRetryExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := completeWithRetry(context.Background(), 1, time.Millisecond, func() (string, error) {
		calls++
		return "", fmt.Errorf("permanent failure")
	})
	if !errors.Is(err, ErrCompletionUnavailable) {
		t.Fatalf("expected ErrCompletionUnavailable, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", calls)
	}
}

func TestCompleteWithRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := completeWithRetry(ctx, 1, time.Millisecond, func() (string, error) {
		calls++
		return "", fmt.Errorf("should not be called")
	})
	if !errors.Is(err, ErrCompletionUnavailable) {
		t.Fatalf("expected ErrCompletionUnavailable, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no calls on a cancelled context, got %d", calls)
	}
}

func TestCompleteWithRetryBackoffObservesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	start := time.Now()
	_, err := completeWithRetry(ctx, 1, 5*time.Second, func() (string, error) {
		return "", fmt.Errorf("always fails")
	})
	elapsed := time.Since(start)

	if !errors.Is(err, ErrCompletionUnavailable) {
		t.Fatalf("expected ErrCompletionUnavailable, got %v", err)
	}
	// Cancellation must interrupt the backoff wait, not sit it out.
	if elapsed >= 5*time.Second {
		t.Fatalf("backoff ignored cancellation, waited %v", elapsed)
	}
}
