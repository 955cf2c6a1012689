package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := &RetryableError{Err: ErrNetwork}

	tests := []struct {
		name      string
		attempts  int
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success first try", 3, 0, nil, 1, nil},
		{"retry then succeed", 3, 2, transient, 3, nil},
		{"exhausted", 3, 5, transient, 3, ErrNetwork},
		{"non-retryable stops", 3, 5, ErrNotFound, 1, ErrNotFound},
		{"zero attempts runs once", 0, 5, transient, 1, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 5, time.Hour, func() error {
		return &RetryableError{Err: ErrNetwork}
	})
	if err != context.Canceled {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	err := &RetryableError{Err: ErrNetwork}
	if !errors.Is(err, ErrNetwork) {
		t.Error("RetryableError should unwrap to its cause")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
	if IsRetryable(ErrNotFound) {
		t.Error("plain errors are not retryable")
	}
}
