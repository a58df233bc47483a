package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/errors"
)

type GetSubscriptionCommand struct {
	SubscriptionSID string
	RequestedBy     uint
	IsAdmin         bool
}

type GetSubscriptionResult struct {
	Subscription  *subscription.Subscription
	Plan          *subscription.Plan
	InGracePeriod bool
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.SubscriptionRepository, planRepo subscription.PlanRepository) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, cmd GetSubscriptionCommand) (*GetSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	if !cmd.IsAdmin && sub.UserID() != cmd.RequestedBy {
		return nil, errors.NewForbiddenError("subscription does not belong to the requesting user")
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return &GetSubscriptionResult{
		Subscription:  sub,
		Plan:          plan,
		InGracePeriod: sub.InGracePeriod(biztime.NowUTC()),
	}, nil
}
