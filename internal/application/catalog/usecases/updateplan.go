package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanSID     string
	Name        string
	Description string
	Visible     bool
	SortOrder   int

	// Pricing fields. UpdatePricing must be true for these to apply;
	// pricing changes are rejected while active subscriptions reference
	// the plan.
	UpdatePricing bool
	Price         int64
	Currency      string
	BillingCycle  string
	StripePriceID string

	RequestedBy uint
}

type UpdatePlanResult struct {
	Plan *subscription.Plan
}

// UpdatePlanUseCase edits a plan. Metadata (name, description,
// visibility, ordering) is always mutable; pricing is frozen once any
// active subscription references the plan, because subscribers bought at
// that price.
type UpdatePlanUseCase struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SubscriptionRepository
	auditRepo        audit.Repository
	logger           logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		logger:           logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*UpdatePlanResult, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	if err := plan.UpdateMetadata(cmd.Name, cmd.Description, cmd.Visible, cmd.SortOrder); err != nil {
		return nil, errors.NewValidationError("invalid plan metadata", err.Error())
	}

	if cmd.UpdatePricing {
		activeCount, err := uc.subscriptionRepo.CountActiveByPlanID(ctx, plan.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
		}
		if activeCount > 0 {
			return nil, errors.NewConflictError("plan pricing is frozen",
				fmt.Sprintf("%d active subscriptions reference this plan", activeCount))
		}

		cycle, err := vo.ParseBillingCycle(cmd.BillingCycle)
		if err != nil {
			return nil, errors.NewValidationError("invalid billing cycle", cmd.BillingCycle)
		}
		if err := plan.UpdatePricing(cmd.Price, cmd.Currency, cycle, cmd.StripePriceID); err != nil {
			return nil, errors.NewValidationError("invalid plan pricing", err.Error())
		}
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	if entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionPlanUpdated, "plan", plan.SID(), map[string]interface{}{
		"pricing_updated": cmd.UpdatePricing,
	}); err == nil {
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			uc.logger.Warnw("failed to write audit entry", "error", err, "plan_sid", plan.SID())
		}
	}

	uc.logger.Infow("plan updated", "plan_sid", plan.SID(), "pricing_updated", cmd.UpdatePricing)
	return &UpdatePlanResult{Plan: plan}, nil
}
