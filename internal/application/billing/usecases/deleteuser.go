package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type DeleteUserCommand struct {
	UserID      uint
	RequestedBy uint
}

type DeleteUserResult struct {
	RemoteCancellations int
	RemoteFailures      int
}

// DeleteUserUseCase removes a user and cascades over their
// subscriptions. Remote cancellations are best effort: a gateway failure
// is audited and logged but never blocks the local deletion, because a
// user's right to leave does not depend on gateway availability.
type DeleteUserUseCase struct {
	userRepo         user.Repository
	subscriptionRepo subscription.SubscriptionRepository
	auditRepo        audit.Repository
	gw               gateway.PaymentGateway
	tx               TxManager
	logger           logger.Interface
}

func NewDeleteUserUseCase(
	userRepo user.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	auditRepo audit.Repository,
	gw gateway.PaymentGateway,
	tx TxManager,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		gw:               gw,
		tx:               tx,
		logger:           logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) (*DeleteUserResult, error) {
	usr, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if usr == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	subs, err := uc.subscriptionRepo.ListByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	result := &DeleteUserResult{}
	for _, sub := range subs {
		ref := sub.StripeSubscriptionID()
		if ref == nil || *ref == "" {
			continue
		}
		if sub.Status() == vo.StatusExpired {
			continue
		}

		if err := uc.gw.CancelSubscription(ctx, *ref); err != nil {
			result.RemoteFailures++
			uc.logger.Warnw("remote cancellation failed during user deletion",
				"error", err,
				"user_id", cmd.UserID,
				"subscription_sid", sub.SID(),
			)
			uc.auditRemoteCancelFailure(ctx, cmd, sub, err)
			continue
		}
		result.RemoteCancellations++
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, sub := range subs {
			if sub.Status() == vo.StatusExpired {
				continue
			}
			if err := sub.MarkAsExpired(); err != nil {
				return fmt.Errorf("failed to expire subscription %s: %w", sub.SID(), err)
			}
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription %s: %w", sub.SID(), err)
			}
		}

		if err := uc.userRepo.Delete(txCtx, cmd.UserID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionUserDeleted, "user", usr.Email(), map[string]interface{}{
			"user_id":              cmd.UserID,
			"subscriptions":        len(subs),
			"remote_cancellations": result.RemoteCancellations,
			"remote_failures":      result.RemoteFailures,
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
		uc.logger.Errorw("failed to delete user", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	uc.logger.Infow("user deleted",
		"user_id", cmd.UserID,
		"remote_cancellations", result.RemoteCancellations,
		"remote_failures", result.RemoteFailures,
	)
	return result, nil
}

func (uc *DeleteUserUseCase) auditRemoteCancelFailure(ctx context.Context, cmd DeleteUserCommand, sub *subscription.Subscription, cause error) {
	entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionRemoteCancelFailed, "subscription", sub.SID(), map[string]interface{}{
		"user_id": cmd.UserID,
		"failure": cause.Error(),
	})
	if err != nil {
		return
	}
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		uc.logger.Errorw("failed to write remote-cancel-failed audit entry",
			"error", err,
			"subscription_sid", sub.SID(),
		)
	}
}
