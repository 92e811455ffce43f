package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2.0}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDo_RecoversFromTransientFailure(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected recovery, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustionWrapsLastError(t *testing.T) {
	last := errors.New("connection refused")
	calls := 0
	err := testPolicy().Do(context.Background(), "wishlists.find", func(ctx context.Context) error {
		calls++
		return fmt.Errorf("attempt %d: %w", calls, last)
	})

	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
	if !errors.Is(err, last) {
		t.Errorf("Expected exhaustion to wrap the last error, got %v", err)
	}
	if err.Error() != "wishlists.find: retries exhausted: attempt 3: connection refused" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestDo_AbsenceIsNotRetried(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return mongo.ErrNoDocuments
	})

	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("Expected ErrNoDocuments, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDo_CancelledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := testPolicy().Do(ctx, "test", func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("connection reset")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestDo_ContextErrorFromOperationIsFinal(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return context.DeadlineExceeded
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}
