package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type DeletePlanCommand struct {
	PlanSID     string
	RequestedBy uint
}

// DeletePlanUseCase removes a plan from the catalog. A plan with active
// subscriptions cannot be deleted; deactivate it instead so existing
// subscribers keep their terms while new signups stop.
type DeletePlanUseCase struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SubscriptionRepository
	auditRepo        audit.Repository
	logger           logger.Interface
}

func NewDeletePlanUseCase(
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		logger:           logger,
	}
}

func (uc *DeletePlanUseCase) Execute(ctx context.Context, cmd DeletePlanCommand) error {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found")
	}

	activeCount, err := uc.subscriptionRepo.CountActiveByPlanID(ctx, plan.ID())
	if err != nil {
		return fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	if activeCount > 0 {
		return errors.NewConflictError("plan has active subscriptions",
			fmt.Sprintf("%d active subscriptions reference this plan", activeCount))
	}

	if err := uc.planRepo.Delete(ctx, plan.ID()); err != nil {
		uc.logger.Errorw("failed to delete plan", "error", err, "plan_sid", cmd.PlanSID)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	if entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionPlanDeleted, "plan", plan.SID(), map[string]interface{}{
		"name": plan.Name(),
	}); err == nil {
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			uc.logger.Warnw("failed to write audit entry", "error", err, "plan_sid", plan.SID())
		}
	}

	uc.logger.Infow("plan deleted", "plan_sid", plan.SID(), "name", plan.Name())
	return nil
}
