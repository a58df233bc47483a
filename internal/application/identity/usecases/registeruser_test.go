package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

func TestRegisterUser_Success(t *testing.T) {
	userRepo := &fakeUserRepo{}
	mailer := &fakeMailer{}

	uc := NewRegisterUserUseCase(userRepo, &fakeVerificationTokens{}, mailer, logger.NewLogger())
	result, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "  Jo@Example.COM ",
		Username: "jo",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", result.User.Email(), "email is normalized before storage")
	assert.False(t, result.User.IsEmailVerified())
	assert.Equal(t, user.RoleUser, result.User.Role())
	require.Len(t, userRepo.Created, 1)
	assert.Equal(t, []string{"jo@example.com"}, mailer.Sent)
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	uc := NewRegisterUserUseCase(&fakeUserRepo{}, &fakeVerificationTokens{}, &fakeMailer{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "jo@example.com",
		Username: "jo",
		Password: "short",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	userRepo := &fakeUserRepo{CreateFn: func(ctx context.Context, u *user.User) error {
		return errors.NewConflictError("email is already registered")
	}}

	uc := NewRegisterUserUseCase(userRepo, &fakeVerificationTokens{}, &fakeMailer{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "jo@example.com",
		Username: "jo",
		Password: "correct horse battery",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestRegisterUser_MailFailureDoesNotFailRegistration(t *testing.T) {
	userRepo := &fakeUserRepo{}
	mailer := &fakeMailer{FailWith: fmt.Errorf("smtp: connection refused")}

	uc := NewRegisterUserUseCase(userRepo, &fakeVerificationTokens{}, mailer, logger.NewLogger())
	result, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "jo@example.com",
		Username: "jo",
		Password: "correct horse battery",
	})

	require.NoError(t, err, "the resend endpoint covers a lost first email")
	require.Len(t, userRepo.Created, 1)
	assert.NotNil(t, result.User)
}
