package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAPIErrorMatchesSentinels(t *testing.T) {
	unauthorized := NewAPIError("Unauthorized", 401, nil)
	wrapped := fmt.Errorf("load profile: %w", unauthorized)

	if !stderrors.Is(wrapped, ErrUnauthorized) {
		t.Fatalf("expected wrapped 401 to match ErrUnauthorized")
	}
	if stderrors.Is(wrapped, ErrCircuitOpen) {
		t.Fatalf("401 must not match ErrCircuitOpen")
	}

	open := NewCircuitOpenError(map[string]any{"path": "/movies/trending"})
	if !stderrors.Is(open, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error to match ErrCircuitOpen")
	}
	if open.Retryable() {
		t.Fatalf("circuit open errors must not be retried")
	}
}

func TestAPIErrorRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{status: 400, want: false},
		{status: 401, want: false},
		{status: 404, want: false},
		{status: 429, want: true},
		{status: 500, want: true},
		{status: 503, want: true},
	}

	for _, tt := range tests {
		if got := NewAPIError("x", tt.status, nil).Retryable(); got != tt.want {
			t.Errorf("status %d: Retryable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewCacheError("failed to connect to Redis", "ping", "", cause)

	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}

	want := "failed to connect to Redis: connection refused"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
