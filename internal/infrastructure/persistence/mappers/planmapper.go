package mappers

import (
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
)

func PlanToModel(p *subscription.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:            p.ID(),
		SID:           p.SID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price(),
		Currency:      p.Currency(),
		BillingCycle:  p.BillingCycle().String(),
		StripePriceID: p.StripePriceID(),
		Visible:       p.IsVisible(),
		Active:        p.IsActive(),
		SortOrder:     p.SortOrder(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func PlanToDomain(model *models.PlanModel) (*subscription.Plan, error) {
	cycle, err := vo.ParseBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("invalid billing cycle on plan %d: %w", model.ID, err)
	}

	p, err := subscription.ReconstructPlan(
		model.ID,
		model.SID,
		model.Name,
		model.Description,
		model.Price,
		model.Currency,
		cycle,
		model.StripePriceID,
		model.Visible,
		model.Active,
		model.SortOrder,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan %d: %w", model.ID, err)
	}
	return p, nil
}
