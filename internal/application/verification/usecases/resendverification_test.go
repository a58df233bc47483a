package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type fakeUserRepo struct {
	GetByIDFn func(ctx context.Context, userID uint) (*user.User, error)
	Updated   []*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	f.Updated = append(f.Updated, u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID uint) error { return nil }

func (f *fakeUserRepo) SetStripeCustomerIDIfEmpty(ctx context.Context, userID uint, customerID string) (bool, error) {
	return true, nil
}

type fakeAuditRepo struct {
	Entries []*audit.Entry
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *audit.Entry) error {
	f.Entries = append(f.Entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListByUserID(ctx context.Context, userID uint, limit int) ([]*audit.Entry, error) {
	return nil, nil
}

func (f *fakeAuditRepo) ListByAction(ctx context.Context, action string, limit int) ([]*audit.Entry, error) {
	return nil, nil
}

type fakeLimiter struct {
	AllowFn func(ctx context.Context, key string) (*RateLimitDecision, error)
	Keys    []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (*RateLimitDecision, error) {
	f.Keys = append(f.Keys, key)
	if f.AllowFn != nil {
		return f.AllowFn(ctx, key)
	}
	return &RateLimitDecision{Allowed: true, Attempts: 1}, nil
}

type fakeTokens struct {
	IssueFn func(userID uint, email string) (string, error)
	ParseFn func(token string) (uint, string, error)
}

func (f *fakeTokens) IssueVerificationToken(userID uint, email string) (string, error) {
	if f.IssueFn != nil {
		return f.IssueFn(userID, email)
	}
	return "tok_test", nil
}

func (f *fakeTokens) ParseVerificationToken(token string) (uint, string, error) {
	if f.ParseFn != nil {
		return f.ParseFn(token)
	}
	return 0, "", errors.NewUnauthorizedError("bad token")
}

type fakeMailer struct {
	VerificationSent []string
	WelcomeSent      []string
	FailWith         error
}

func (f *fakeMailer) SendVerificationEmail(to, username, token string) error {
	if f.FailWith != nil {
		return f.FailWith
	}
	f.VerificationSent = append(f.VerificationSent, to)
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(to, username string) error {
	if f.FailWith != nil {
		return f.FailWith
	}
	f.WelcomeSent = append(f.WelcomeSent, to)
	return nil
}

func unverifiedUser(t *testing.T) *user.User {
	t.Helper()
	now := biztime.NowUTC()
	usr, err := user.ReconstructUser(42, "jo@example.com", "jo", "$2a$10$hash", user.RoleUser,
		false, nil, nil, now, now)
	require.NoError(t, err)
	return usr
}

func verifiedUser(t *testing.T) *user.User {
	t.Helper()
	usr := unverifiedUser(t)
	usr.MarkEmailVerified()
	return usr
}

func TestResendVerification_SendsWithinLimit(t *testing.T) {
	usr := unverifiedUser(t)
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return usr, nil
	}}
	auditRepo := &fakeAuditRepo{}
	limiter := &fakeLimiter{}
	mailer := &fakeMailer{}

	uc := NewResendVerificationUseCase(userRepo, auditRepo, limiter, &fakeTokens{}, mailer, logger.NewLogger())
	err := uc.Execute(context.Background(), ResendVerificationCommand{UserID: 42})

	require.NoError(t, err)
	assert.Equal(t, []string{"verification:42"}, limiter.Keys)
	assert.Equal(t, []string{"jo@example.com"}, mailer.VerificationSent)
	require.Len(t, auditRepo.Entries, 1)
	assert.Equal(t, audit.ActionVerificationEmailResent, auditRepo.Entries[0].Action())
}

func TestResendVerification_CooldownRejected(t *testing.T) {
	usr := unverifiedUser(t)
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return usr, nil
	}}
	limiter := &fakeLimiter{AllowFn: func(ctx context.Context, key string) (*RateLimitDecision, error) {
		return &RateLimitDecision{Allowed: false, RemainingCooldownSeconds: 37}, nil
	}}
	mailer := &fakeMailer{}

	uc := NewResendVerificationUseCase(userRepo, &fakeAuditRepo{}, limiter, &fakeTokens{}, mailer, logger.NewLogger())
	err := uc.Execute(context.Background(), ResendVerificationCommand{UserID: 42})

	require.Error(t, err)
	assert.True(t, errors.IsRateLimitError(err))
	assert.Contains(t, err.Error(), "37 seconds")
	assert.Empty(t, mailer.VerificationSent)
}

func TestResendVerification_AttemptsExhausted(t *testing.T) {
	usr := unverifiedUser(t)
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return usr, nil
	}}
	reset := biztime.NowUTC().Add(45 * time.Minute)
	limiter := &fakeLimiter{AllowFn: func(ctx context.Context, key string) (*RateLimitDecision, error) {
		return &RateLimitDecision{Allowed: false, ResetTime: reset, Attempts: 5}, nil
	}}

	uc := NewResendVerificationUseCase(userRepo, &fakeAuditRepo{}, limiter, &fakeTokens{}, &fakeMailer{}, logger.NewLogger())
	err := uc.Execute(context.Background(), ResendVerificationCommand{UserID: 42})

	require.Error(t, err)
	assert.True(t, errors.IsRateLimitError(err))
}

func TestResendVerification_AlreadyVerifiedConflict(t *testing.T) {
	usr := verifiedUser(t)
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return usr, nil
	}}
	limiter := &fakeLimiter{}

	uc := NewResendVerificationUseCase(userRepo, &fakeAuditRepo{}, limiter, &fakeTokens{}, &fakeMailer{}, logger.NewLogger())
	err := uc.Execute(context.Background(), ResendVerificationCommand{UserID: 42})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, limiter.Keys, "verified accounts never consume limiter attempts")
}
