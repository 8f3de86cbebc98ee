package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string      { return fmt.Sprintf("http %d", e.code) }
func (e *statusErr) HTTPStatusCode() int { return e.code }

func TestIsRetryableHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 599} {
		if !IsRetryableHTTPStatus(code) {
			t.Fatalf("expected %d retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 404} {
		if IsRetryableHTTPStatus(code) {
			t.Fatalf("expected %d not retryable", code)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	if IsRetryableError(nil) {
		t.Fatalf("nil is not retryable")
	}
	if !IsRetryableError(context.DeadlineExceeded) {
		t.Fatalf("deadline exceeded is retryable")
	}
	if !IsRetryableError(fmt.Errorf("wrapped: %w", &statusErr{code: 503})) {
		t.Fatalf("wrapped 503 is retryable")
	}
	if IsRetryableError(fmt.Errorf("wrapped: %w", &statusErr{code: 400})) {
		t.Fatalf("wrapped 400 is not retryable")
	}
	if IsRetryableError(errors.New("parse failure")) {
		t.Fatalf("plain errors are not retryable")
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "7")
	if got := RetryAfterDuration(resp, time.Second, time.Minute); got != 7*time.Second {
		t.Fatalf("expected header honored, got %v", got)
	}
	if got := RetryAfterDuration(resp, time.Second, 3*time.Second); got != 3*time.Second {
		t.Fatalf("expected cap applied, got %v", got)
	}
	if got := RetryAfterDuration(nil, 2*time.Second, time.Minute); got != 2*time.Second {
		t.Fatalf("expected fallback without response, got %v", got)
	}
}

func TestJitterSleep_Bounds(t *testing.T) {
	if got := JitterSleep(0); got != 0 {
		t.Fatalf("expected zero for zero base, got %v", got)
	}
	base := time.Second
	for i := 0; i < 100; i++ {
		got := JitterSleep(base)
		if got < 800*time.Millisecond || got > 1200*time.Millisecond {
			t.Fatalf("jitter out of bounds: %v", got)
		}
	}
}
