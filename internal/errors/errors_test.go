package errors

import (
	stdErrors "errors"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("slow down")

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := stdErrors.Join(err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", 2*time.Minute)

	expected := "too many requests (retry after 2m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError with retry hint")
	}

	if err.RetryAfter.Minutes() != 2.0 {
		t.Fatalf("RetryAfter = %v, want 2 minutes", err.RetryAfter)
	}
}

func TestRateLimitErrorWithRetry_ZeroDuration(t *testing.T) {
	err := NewRateLimitErrorWithRetry("rate limited", 0)

	if err.Error() != "rate limited" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "rate limited")
	}
}

func TestStopProcessingError(t *testing.T) {
	err := NewStopProcessingError("user stopped")

	if err.Error() != "user stopped" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "user stopped")
	}

	if !IsStopProcessingError(err) {
		t.Fatalf("IsStopProcessingError returned false for StopProcessingError")
	}
}

func TestSnapshotNotFoundError(t *testing.T) {
	err := NewSnapshotNotFoundError("alice_76561198000000001")

	expected := `no cached library snapshot for account "alice_76561198000000001"`
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsSnapshotNotFoundError(err) {
		t.Fatalf("IsSnapshotNotFoundError returned false for SnapshotNotFoundError")
	}

	wrapped := stdErrors.Join(err, stdErrors.New("additional context"))
	if !IsSnapshotNotFoundError(wrapped) {
		t.Fatalf("IsSnapshotNotFoundError returned false for wrapped SnapshotNotFoundError")
	}

	if IsGameNotFoundError(err) {
		t.Fatalf("IsGameNotFoundError returned true for SnapshotNotFoundError")
	}
}

func TestGameNotFoundError(t *testing.T) {
	err := NewGameNotFoundError("Half-Life 3")

	expected := `game "Half-Life 3" not found in live library listing`
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsGameNotFoundError(err) {
		t.Fatalf("IsGameNotFoundError returned false for GameNotFoundError")
	}
}

func TestProfileError_403Private(t *testing.T) {
	err := NewProfileError(403, "Profile is private")

	expected := "Steam profile is private or inaccessible (HTTP 403): Profile is private"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsProfileError(err) {
		t.Fatalf("IsProfileError returned false for ProfileError")
	}

	if err.StatusCode != 403 {
		t.Fatalf("StatusCode = %d, want 403", err.StatusCode)
	}
}

func TestProfileError_401(t *testing.T) {
	err := NewProfileError(401, "Invalid key")

	expected := "Invalid Steam API key (HTTP 401): Invalid key"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}
}

func TestProfileError_OtherStatusCode(t *testing.T) {
	err := NewProfileError(500, "Server error")

	expected := "Steam API access error (HTTP 500): Server error"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}
}

func TestProfileError_EmptyAPIMessage(t *testing.T) {
	err := NewProfileError(403, "")

	expected := "Access forbidden - check API key and profile settings (HTTP 403)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}
}
