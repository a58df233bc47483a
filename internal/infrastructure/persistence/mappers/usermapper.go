// Package mappers converts between domain aggregates and persistence
// models. Conversion failures mean corrupt rows and are surfaced as
// errors, never papered over.
package mappers

import (
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                   u.ID(),
		Email:                u.Email(),
		Username:             u.Username(),
		PasswordHash:         u.PasswordHash(),
		Role:                 string(u.Role()),
		EmailVerified:        u.IsEmailVerified(),
		StripeCustomerID:     u.StripeCustomerID(),
		StripeSubscriptionID: u.StripeSubscriptionID(),
		CreatedAt:            u.CreatedAt(),
		UpdatedAt:            u.UpdatedAt(),
	}
}

func UserToDomain(model *models.UserModel) (*user.User, error) {
	u, err := user.ReconstructUser(
		model.ID,
		model.Email,
		model.Username,
		model.PasswordHash,
		user.Role(model.Role),
		model.EmailVerified,
		model.StripeCustomerID,
		model.StripeSubscriptionID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user %d: %w", model.ID, err)
	}
	return u, nil
}
