package usecases

import (
	"context"
	"time"
)

// RateLimitDecision is the limiter's verdict for one attempt. At most one
// of RemainingCooldownSeconds and ResetTime is meaningful when Allowed is
// false: a running cooldown reports seconds, an exhausted window reports
// when it resets.
type RateLimitDecision struct {
	Allowed                  bool
	RemainingCooldownSeconds int
	ResetTime                time.Time
	Attempts                 int
}

// RateLimiter bounds how often a key may perform an action. The state
// lives in a shared store so the limit holds across processes.
type RateLimiter interface {
	// Allow records an attempt for the key and reports whether it may
	// proceed. A rejected attempt is not counted against the window.
	Allow(ctx context.Context, key string) (*RateLimitDecision, error)
}

// TokenIssuer mints and validates the signed tokens embedded in
// verification links.
type TokenIssuer interface {
	IssueVerificationToken(userID uint, email string) (string, error)
	// ParseVerificationToken returns the user id and email the token was
	// issued for, or an error for expired or tampered tokens.
	ParseVerificationToken(token string) (uint, string, error)
}

// Mailer sends account lifecycle email.
type Mailer interface {
	SendVerificationEmail(to, username, token string) error
	SendWelcomeEmail(to, username string) error
}
