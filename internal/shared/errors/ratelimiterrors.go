package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RateLimitError is returned when a bounded-frequency action is rejected.
// It carries either the remaining cooldown in seconds or the absolute time
// at which the attempt window resets, so clients can back off precisely.
type RateLimitError struct {
	AppError
	RemainingSeconds int        `json:"remaining_seconds,omitempty"`
	ResetTime        *time.Time `json:"reset_time,omitempty"`
}

// NewCooldownError creates a rate limit error for a per-action cooldown.
func NewCooldownError(remainingSeconds int) *RateLimitError {
	return &RateLimitError{
		AppError: AppError{
			Type:    ErrorTypeRateLimited,
			Message: "please wait before requesting another verification email",
			Code:    http.StatusTooManyRequests,
			Details: fmt.Sprintf("retry in %d seconds", remainingSeconds),
		},
		RemainingSeconds: remainingSeconds,
	}
}

// NewAttemptsExhaustedError creates a rate limit error for an exhausted
// attempt window.
func NewAttemptsExhaustedError(resetTime time.Time) *RateLimitError {
	return &RateLimitError{
		AppError: AppError{
			Type:    ErrorTypeRateLimited,
			Message: "too many verification emails requested",
			Code:    http.StatusTooManyRequests,
			Details: fmt.Sprintf("limit resets at %s", resetTime.UTC().Format(time.RFC3339)),
		},
		ResetTime: &resetTime,
	}
}

// GetRateLimitError extracts a RateLimitError from an error chain.
func GetRateLimitError(err error) *RateLimitError {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr
	}
	return nil
}

// IsRateLimitError checks whether the error is a rate limit rejection.
func IsRateLimitError(err error) bool {
	return GetRateLimitError(err) != nil
}
