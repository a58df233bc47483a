package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type ResendVerificationCommand struct {
	UserID uint
}

// ResendVerificationUseCase re-sends the verification email, bounded by
// the shared rate limiter: a short per-send cooldown plus a capped number
// of sends per window. The limiter state is keyed per user and lives in a
// shared store, so the bound holds across instances.
type ResendVerificationUseCase struct {
	userRepo  user.Repository
	auditRepo audit.Repository
	limiter   RateLimiter
	tokens    TokenIssuer
	mailer    Mailer
	logger    logger.Interface
}

func NewResendVerificationUseCase(
	userRepo user.Repository,
	auditRepo audit.Repository,
	limiter RateLimiter,
	tokens TokenIssuer,
	mailer Mailer,
	logger logger.Interface,
) *ResendVerificationUseCase {
	return &ResendVerificationUseCase{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		limiter:   limiter,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger,
	}
}

func (uc *ResendVerificationUseCase) Execute(ctx context.Context, cmd ResendVerificationCommand) error {
	usr, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if usr == nil {
		return errors.NewNotFoundError("user not found")
	}
	if usr.IsEmailVerified() {
		return errors.NewConflictError("email is already verified")
	}

	decision, err := uc.limiter.Allow(ctx, fmt.Sprintf("verification:%d", cmd.UserID))
	if err != nil {
		return fmt.Errorf("rate limiter failure: %w", err)
	}
	if !decision.Allowed {
		if decision.RemainingCooldownSeconds > 0 {
			return errors.NewCooldownError(decision.RemainingCooldownSeconds)
		}
		return errors.NewAttemptsExhaustedError(decision.ResetTime)
	}

	token, err := uc.tokens.IssueVerificationToken(usr.ID(), usr.Email())
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	if err := uc.mailer.SendVerificationEmail(usr.Email(), usr.Username(), token); err != nil {
		uc.logger.Errorw("failed to send verification email", "error", err, "user_id", cmd.UserID)
		return errors.NewInternalError("failed to send verification email")
	}

	if entry, err := audit.NewEntry(cmd.UserID, audit.ActionVerificationEmailResent, "user", usr.Email(), map[string]interface{}{
		"attempt": decision.Attempts,
	}); err == nil {
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			uc.logger.Warnw("failed to write audit entry", "error", err, "user_id", cmd.UserID)
		}
	}

	uc.logger.Infow("verification email resent", "user_id", cmd.UserID, "attempt", decision.Attempts)
	return nil
}
