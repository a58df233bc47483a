package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

const sweepBatchSize = 200

type SweepExpiredResult struct {
	// Deactivated counts cancelled subscriptions whose grace period ended.
	Deactivated int
	// Expired counts active subscriptions whose end date passed without
	// renewal.
	Expired int
}

// SweepExpiredUseCase is the periodic job that moves subscriptions out of
// service once their end date has passed. It is the only writer of the
// isActive=false transition for cancelled rows.
type SweepExpiredUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewSweepExpiredUseCase(subscriptionRepo subscription.SubscriptionRepository, logger logger.Interface) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *SweepExpiredUseCase) Execute(ctx context.Context) (*SweepExpiredResult, error) {
	now := biztime.NowUTC()
	result := &SweepExpiredResult{}

	graceEnded, err := uc.subscriptionRepo.ListGraceExpired(ctx, now, sweepBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list grace-expired subscriptions: %w", err)
	}
	for _, sub := range graceEnded {
		if err := sub.Deactivate(now); err != nil {
			uc.logger.Warnw("skipping subscription during sweep", "error", err, "subscription_sid", sub.SID())
			continue
		}
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to deactivate subscription", "error", err, "subscription_sid", sub.SID())
			continue
		}
		result.Deactivated++
	}

	activeEnded, err := uc.subscriptionRepo.ListActiveExpired(ctx, now, sweepBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list active-expired subscriptions: %w", err)
	}
	for _, sub := range activeEnded {
		if err := sub.MarkAsExpired(); err != nil {
			uc.logger.Warnw("skipping subscription during sweep", "error", err, "subscription_sid", sub.SID())
			continue
		}
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to expire subscription", "error", err, "subscription_sid", sub.SID())
			continue
		}
		result.Expired++
	}

	if result.Deactivated > 0 || result.Expired > 0 {
		uc.logger.Infow("subscription sweep completed",
			"deactivated", result.Deactivated,
			"expired", result.Expired,
		)
	}
	return result, nil
}
