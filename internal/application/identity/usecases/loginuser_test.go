package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type fakeUserRepo struct {
	CreateFn     func(ctx context.Context, u *user.User) error
	GetByEmailFn func(ctx context.Context, email string) (*user.User, error)
	Created      []*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.Created = append(f.Created, u)
	if f.CreateFn != nil {
		return f.CreateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.GetByEmailFn != nil {
		return f.GetByEmailFn(ctx, email)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID uint) error { return nil }

func (f *fakeUserRepo) SetStripeCustomerIDIfEmpty(ctx context.Context, userID uint, customerID string) (bool, error) {
	return true, nil
}

type fakeAccessTokens struct {
	GenerateFn func(userID uint, role string) (string, error)
}

func (f *fakeAccessTokens) GenerateAccessToken(userID uint, role string) (string, error) {
	if f.GenerateFn != nil {
		return f.GenerateFn(userID, role)
	}
	return "jwt_test", nil
}

type fakeVerificationTokens struct {
	IssueFn func(userID uint, email string) (string, error)
}

func (f *fakeVerificationTokens) IssueVerificationToken(userID uint, email string) (string, error) {
	if f.IssueFn != nil {
		return f.IssueFn(userID, email)
	}
	return "tok_test", nil
}

type fakeMailer struct {
	Sent     []string
	FailWith error
}

func (f *fakeMailer) SendVerificationEmail(to, username, token string) error {
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Sent = append(f.Sent, to)
	return nil
}

func registeredUser(t *testing.T, password string) *user.User {
	t.Helper()
	usr, err := user.NewUser("jo@example.com", "jo", password)
	require.NoError(t, err)
	require.NoError(t, usr.SetID(42))
	return usr
}

func TestLoginUser_Success(t *testing.T) {
	usr := registeredUser(t, "correct horse battery")
	userRepo := &fakeUserRepo{GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
		assert.Equal(t, "jo@example.com", email)
		return usr, nil
	}}

	var tokenRole string
	tokens := &fakeAccessTokens{GenerateFn: func(userID uint, role string) (string, error) {
		tokenRole = role
		return "jwt_test", nil
	}}

	uc := NewLoginUserUseCase(userRepo, tokens, logger.NewLogger())
	result, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "  Jo@Example.COM ",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt_test", result.AccessToken)
	assert.Equal(t, "user", tokenRole)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	usr := registeredUser(t, "correct horse battery")
	userRepo := &fakeUserRepo{GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
		return usr, nil
	}}

	uc := NewLoginUserUseCase(userRepo, &fakeAccessTokens{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "jo@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestLoginUser_UnknownEmailSameError(t *testing.T) {
	uc := NewLoginUserUseCase(&fakeUserRepo{}, &fakeAccessTokens{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "invalid email or password", appErr.Message, "unknown email and wrong password are indistinguishable")
}

func TestLoginUser_MissingFields(t *testing.T) {
	uc := NewLoginUserUseCase(&fakeUserRepo{}, &fakeAccessTokens{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), LoginUserCommand{Email: "jo@example.com"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
