package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email    string
	Username string
	Password string
}

type RegisterUserResult struct {
	User *user.User
}

// RegisterUserUseCase creates an account and sends the verification
// email. The account starts unverified; the send is best effort because
// the resend endpoint exists exactly for the case where it never
// arrives.
type RegisterUserUseCase struct {
	userRepo user.Repository
	tokens   VerificationTokenIssuer
	mailer   Mailer
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	tokens VerificationTokenIssuer,
	mailer Mailer,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	usr, err := user.NewUser(email, strings.TrimSpace(cmd.Username), cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, usr); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokens.IssueVerificationToken(usr.ID(), usr.Email())
	if err != nil {
		uc.logger.Errorw("failed to issue verification token", "error", err, "user_id", usr.ID())
		return &RegisterUserResult{User: usr}, nil
	}

	if err := uc.mailer.SendVerificationEmail(usr.Email(), usr.Username(), token); err != nil {
		uc.logger.Warnw("failed to send verification email", "error", err, "user_id", usr.ID())
	}

	uc.logger.Infow("user registered", "user_id", usr.ID(), "email", usr.Email())
	return &RegisterUserResult{User: usr}, nil
}
