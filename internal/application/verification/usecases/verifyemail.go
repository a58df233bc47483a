package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type VerifyEmailCommand struct {
	Token string
}

// VerifyEmailUseCase validates a verification link token and marks the
// account verified. Verification is idempotent: re-using a valid token on
// an already-verified account succeeds without side effects.
type VerifyEmailUseCase struct {
	userRepo user.Repository
	tokens   TokenIssuer
	mailer   Mailer
	logger   logger.Interface
}

func NewVerifyEmailUseCase(userRepo user.Repository, tokens TokenIssuer, mailer Mailer, logger logger.Interface) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) error {
	if cmd.Token == "" {
		return errors.NewValidationError("verification token is required")
	}

	userID, email, err := uc.tokens.ParseVerificationToken(cmd.Token)
	if err != nil {
		return errors.NewUnauthorizedError("invalid or expired verification token")
	}

	usr, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if usr == nil {
		return errors.NewNotFoundError("user not found")
	}
	if usr.Email() != email {
		// The address changed after the token was issued.
		return errors.NewUnauthorizedError("verification token no longer matches the account")
	}
	if usr.IsEmailVerified() {
		return nil
	}

	usr.MarkEmailVerified()
	if err := uc.userRepo.Update(ctx, usr); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := uc.mailer.SendWelcomeEmail(usr.Email(), usr.Username()); err != nil {
		// Verification already committed; the welcome mail is a nicety.
		uc.logger.Warnw("failed to send welcome email", "error", err, "user_id", userID)
	}

	uc.logger.Infow("email verified", "user_id", userID)
	return nil
}
