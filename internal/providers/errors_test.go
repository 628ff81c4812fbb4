package providers

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusError(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &StatusError{Provider: "naver", StatusCode: http.StatusBadGateway})

	st, ok := AsStatusError(err)
	if !ok {
		t.Fatalf("expected to unwrap status error")
	}
	if got := st.Error(); got != "naver: unexpected status 502" {
		t.Fatalf("unexpected message %q", got)
	}
	if !st.Temporary() {
		t.Fatalf("expected 5xx to be temporary")
	}
	if (&StatusError{StatusCode: http.StatusNotFound}).Temporary() {
		t.Fatalf("expected 404 to be permanent")
	}
	if _, ok := AsStatusError(fmt.Errorf("plain")); ok {
		t.Fatalf("expected no status error")
	}
}
