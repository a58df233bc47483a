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

type CreatePlanCommand struct {
	Name          string
	Description   string
	Price         int64
	Currency      string
	BillingCycle  string
	StripePriceID string
	Visible       bool
	SortOrder     int
	RequestedBy   uint
}

type CreatePlanResult struct {
	Plan *subscription.Plan
}

type CreatePlanUseCase struct {
	planRepo  subscription.PlanRepository
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewCreatePlanUseCase(planRepo subscription.PlanRepository, auditRepo audit.Repository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo:  planRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*CreatePlanResult, error) {
	cycle, err := vo.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, errors.NewValidationError("invalid billing cycle", cmd.BillingCycle)
	}

	plan, err := subscription.NewPlan(cmd.Name, cmd.Description, cmd.Price, cmd.Currency, cycle, cmd.StripePriceID)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan", err.Error())
	}
	if !cmd.Visible || cmd.SortOrder != 0 {
		if err := plan.UpdateMetadata(cmd.Name, cmd.Description, cmd.Visible, cmd.SortOrder); err != nil {
			return nil, errors.NewValidationError("invalid plan", err.Error())
		}
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("plan with this name already exists")
		}
		uc.logger.Errorw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	if entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionPlanCreated, "plan", plan.SID(), map[string]interface{}{
		"name":          cmd.Name,
		"price_cents":   cmd.Price,
		"currency":      plan.Currency(),
		"billing_cycle": cycle.String(),
	}); err == nil {
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			uc.logger.Warnw("failed to write audit entry", "error", err, "plan_sid", plan.SID())
		}
	}

	uc.logger.Infow("plan created", "plan_sid", plan.SID(), "name", cmd.Name)
	return &CreatePlanResult{Plan: plan}, nil
}
