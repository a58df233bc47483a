package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
)

type ListUserSubscriptionsCommand struct {
	UserID uint
}

type ListUserSubscriptionsResult struct {
	Subscriptions []*subscription.Subscription
}

type ListUserSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
}

func NewListUserSubscriptionsUseCase(subscriptionRepo subscription.SubscriptionRepository) *ListUserSubscriptionsUseCase {
	return &ListUserSubscriptionsUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *ListUserSubscriptionsUseCase) Execute(ctx context.Context, cmd ListUserSubscriptionsCommand) (*ListUserSubscriptionsResult, error) {
	subs, err := uc.subscriptionRepo.ListByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return &ListUserSubscriptionsResult{Subscriptions: subs}, nil
}
