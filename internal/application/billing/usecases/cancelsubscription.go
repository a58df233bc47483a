package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionSID string
	SubscriptionID  uint
	RequestedBy     uint
	IsAdmin         bool
}

type CancelSubscriptionResult struct {
	Subscription *subscription.Subscription
	// EndDate is when access actually stops: the end of the grace period.
	EndDate time.Time
}

// CancelSubscriptionUseCase cancels a subscription with a grace period.
// The subscription keeps serving until its end date; the sweep job
// deactivates it afterwards.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	auditRepo        audit.Repository
	tx               TxManager
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	auditRepo audit.Repository,
	tx TxManager,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		auditRepo:        auditRepo,
		tx:               tx,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*CancelSubscriptionResult, error) {
	sub, err := uc.getSubscription(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if !cmd.IsAdmin && sub.UserID() != cmd.RequestedBy {
		return nil, errors.NewForbiddenError("subscription does not belong to the requesting user")
	}

	endDate, err := uc.graceEndDate(ctx, sub)
	if err != nil {
		return nil, err
	}

	if err := sub.Cancel(endDate); err != nil {
		return nil, errors.NewConflictError("cannot cancel subscription", err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionSubscriptionCancelled, "subscription", sub.SID(), map[string]interface{}{
			"end_date": endDate.Format(time.RFC3339),
			"by_admin": cmd.IsAdmin,
		})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		if err := uc.auditRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to cancel subscription", "error", err, "subscription_sid", sub.SID())
		return nil, err
	}

	uc.logger.Infow("subscription cancelled",
		"subscription_sid", sub.SID(),
		"user_id", sub.UserID(),
		"end_date", endDate,
	)

	return &CancelSubscriptionResult{Subscription: sub, EndDate: endDate}, nil
}

func (uc *CancelSubscriptionUseCase) getSubscription(ctx context.Context, cmd CancelSubscriptionCommand) (*subscription.Subscription, error) {
	var sub *subscription.Subscription
	var err error

	if cmd.SubscriptionSID != "" {
		sub, err = uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	} else {
		sub, err = uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	return sub, nil
}

// graceEndDate picks the date access stops. A paid-through end date in
// the future is honored as-is; otherwise one billing cycle from now is
// granted, derived from the plan.
func (uc *CancelSubscriptionUseCase) graceEndDate(ctx context.Context, sub *subscription.Subscription) (time.Time, error) {
	now := biztime.NowUTC()
	if sub.EndDate().After(now) {
		return sub.EndDate(), nil
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return time.Time{}, errors.NewNotFoundError("plan not found for subscription")
	}
	return biztime.AddDays(now, plan.BillingCycle().Days()), nil
}
