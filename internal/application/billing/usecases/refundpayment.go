package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/payment"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type RefundPaymentCommand struct {
	PaymentSID  string
	PaymentID   uint
	Reason      string
	RequestedBy uint
}

type RefundPaymentResult struct {
	Refund   *payment.Payment
	Original *payment.Payment
}

// RefundPaymentUseCase issues a refund remote-first: the gateway call
// happens before any local write, so a gateway failure leaves the ledger
// untouched. The compensating row and the original's status flip commit
// in one transaction. The one remaining failure window (remote refund
// succeeded, local transaction failed) is surfaced as a
// reconciliation-required error and audited, never swallowed.
type RefundPaymentUseCase struct {
	paymentRepo payment.Repository
	auditRepo   audit.Repository
	gw          gateway.PaymentGateway
	tx          TxManager
	logger      logger.Interface
}

func NewRefundPaymentUseCase(
	paymentRepo payment.Repository,
	auditRepo audit.Repository,
	gw gateway.PaymentGateway,
	tx TxManager,
	logger logger.Interface,
) *RefundPaymentUseCase {
	return &RefundPaymentUseCase{
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		gw:          gw,
		tx:          tx,
		logger:      logger,
	}
}

func (uc *RefundPaymentUseCase) Execute(ctx context.Context, cmd RefundPaymentCommand) (*RefundPaymentResult, error) {
	if cmd.Reason == "" {
		return nil, errors.NewValidationError("refund reason is required")
	}

	original, err := uc.getPayment(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if !original.IsRefundable() {
		return nil, errors.NewConflictError("payment cannot be refunded", "already refunded or not a charge")
	}

	// Remote first. Card payments carry a payment intent reference; the
	// refund goes through the gateway before anything local changes.
	var remoteRefundID string
	if intentID := original.StripePaymentIntentID(); intentID != nil && *intentID != "" {
		refund, err := uc.gw.CreateRefund(ctx, *intentID, cmd.Reason)
		if err != nil {
			uc.logger.Errorw("gateway refund failed",
				"error", err,
				"payment_sid", original.SID(),
				"payment_intent_id", *intentID,
			)
			if errors.IsGatewayError(err) {
				return nil, err
			}
			return nil, errors.NewGatewayRefundFailedError("gateway rejected the refund", err.Error())
		}
		remoteRefundID = refund.ID
	}

	refundRow, err := payment.NewRefundPayment(original, cmd.Reason)
	if err != nil {
		return nil, errors.NewConflictError("cannot derive refund", err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.paymentRepo.Create(txCtx, refundRow); err != nil {
			return fmt.Errorf("failed to create refund row: %w", err)
		}
		if err := original.MarkAsRefunded(); err != nil {
			return errors.NewConflictError("payment already refunded", err.Error())
		}
		if err := uc.paymentRepo.Update(txCtx, original); err != nil {
			return fmt.Errorf("failed to update original payment: %w", err)
		}

		entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionPaymentRefunded, "payment", original.SID(), map[string]interface{}{
			"refund_sid":       refundRow.SID(),
			"remote_refund_id": remoteRefundID,
			"reason":           cmd.Reason,
			"amount_cents":     refundRow.Amount().AmountInCents(),
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
		if remoteRefundID != "" {
			// Remote money moved but the ledger did not. Record the
			// discrepancy before reporting it.
			uc.recordReconcileRequired(ctx, cmd, original, remoteRefundID, err)
			return nil, errors.NewReconciliationRequiredError(
				"refund succeeded at the gateway but local recording failed",
				fmt.Sprintf("payment %s, remote refund %s", original.SID(), remoteRefundID),
			)
		}
		return nil, err
	}

	uc.logger.Infow("payment refunded",
		"payment_sid", original.SID(),
		"refund_sid", refundRow.SID(),
		"remote_refund_id", remoteRefundID,
	)

	return &RefundPaymentResult{Refund: refundRow, Original: original}, nil
}

func (uc *RefundPaymentUseCase) getPayment(ctx context.Context, cmd RefundPaymentCommand) (*payment.Payment, error) {
	var p *payment.Payment
	var err error

	if cmd.PaymentSID != "" {
		p, err = uc.paymentRepo.GetBySID(ctx, cmd.PaymentSID)
	} else {
		p, err = uc.paymentRepo.GetByID(ctx, cmd.PaymentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("payment not found")
	}
	return p, nil
}

// recordReconcileRequired writes the discrepancy audit entry outside the
// failed transaction, best effort. Losing the audit write too still
// leaves the error visible to the caller and the logs.
func (uc *RefundPaymentUseCase) recordReconcileRequired(ctx context.Context, cmd RefundPaymentCommand, original *payment.Payment, remoteRefundID string, cause error) {
	uc.logger.Errorw("refund reconciliation required",
		"payment_sid", original.SID(),
		"remote_refund_id", remoteRefundID,
		"error", cause,
	)

	entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionRefundReconcileRequired, "payment", original.SID(), map[string]interface{}{
		"remote_refund_id": remoteRefundID,
		"reason":           cmd.Reason,
		"failure":          cause.Error(),
	})
	if err != nil {
		return
	}
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		uc.logger.Errorw("failed to write reconcile-required audit entry",
			"error", err,
			"payment_sid", original.SID(),
		)
	}
}
