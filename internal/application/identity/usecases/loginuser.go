package usecases

import (
	"context"
	"strings"

	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	User        *user.User
	AccessToken string
}

// LoginUserUseCase authenticates by email and password. Unknown email
// and wrong password return the same error so the endpoint does not leak
// which accounts exist.
type LoginUserUseCase struct {
	userRepo user.Repository
	tokens   AccessTokenIssuer
	logger   logger.Interface
}

func NewLoginUserUseCase(userRepo user.Repository, tokens AccessTokenIssuer, logger logger.Interface) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	usr, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if !usr.CheckPassword(cmd.Password) {
		uc.logger.Warnw("failed login attempt", "user_id", usr.ID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	token, err := uc.tokens.GenerateAccessToken(usr.ID(), string(usr.Role()))
	if err != nil {
		return nil, errors.NewInternalError("failed to issue access token")
	}

	return &LoginUserResult{User: usr, AccessToken: token}, nil
}
