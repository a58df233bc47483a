package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) (*models.SubscriptionModel, error) {
	settings, err := json.Marshal(s.ServiceSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal service settings: %w", err)
	}

	return &models.SubscriptionModel{
		ID:                   s.ID(),
		SID:                  s.SID(),
		UserID:               s.UserID(),
		PlanID:               s.PlanID(),
		Status:               s.Status().String(),
		IsActive:             s.IsActive(),
		StartDate:            s.StartDate(),
		EndDate:              s.EndDate(),
		PaymentMethod:        s.PaymentMethod().String(),
		StripeSubscriptionID: s.StripeSubscriptionID(),
		PaymentReference:     s.PaymentReference(),
		ServiceSettings:      datatypes.JSON(settings),
		Version:              s.Version(),
		CreatedAt:            s.CreatedAt(),
		UpdatedAt:            s.UpdatedAt(),
	}, nil
}

func SubscriptionToDomain(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	method, err := vo.ParsePaymentMethod(model.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid payment method on subscription %d: %w", model.ID, err)
	}

	settings := make(map[string]interface{})
	if len(model.ServiceSettings) > 0 {
		if err := json.Unmarshal(model.ServiceSettings, &settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service settings on subscription %d: %w", model.ID, err)
		}
	}

	s, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		model.PlanID,
		vo.SubscriptionStatus(model.Status),
		model.IsActive,
		model.StartDate,
		model.EndDate,
		method,
		model.StripeSubscriptionID,
		model.PaymentReference,
		settings,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription %d: %w", model.ID, err)
	}
	return s, nil
}
