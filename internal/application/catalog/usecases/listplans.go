package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
)

type ListPlansCommand struct {
	// IncludeHidden returns the full catalog; only administrators may set
	// it.
	IncludeHidden bool
}

type ListPlansResult struct {
	Plans []*subscription.Plan
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
}

func NewListPlansUseCase(planRepo subscription.PlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, cmd ListPlansCommand) (*ListPlansResult, error) {
	var plans []*subscription.Plan
	var err error

	if cmd.IncludeHidden {
		plans, err = uc.planRepo.List(ctx)
	} else {
		plans, err = uc.planRepo.ListVisible(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return &ListPlansResult{Plans: plans}, nil
}
