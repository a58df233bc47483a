package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/invoice"
	"github.com/boostline-inc/boostline/internal/domain/payment"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type DeleteInvoiceCommand struct {
	InvoiceID   uint
	RequestedBy uint
}

// DeleteInvoiceUseCase removes a draft or void invoice. An invoice any
// ledger row references is part of payment history and stays.
type DeleteInvoiceUseCase struct {
	invoiceRepo invoice.Repository
	paymentRepo payment.Repository
	auditRepo   audit.Repository
	tx          TxManager
	logger      logger.Interface
}

func NewDeleteInvoiceUseCase(
	invoiceRepo invoice.Repository,
	paymentRepo payment.Repository,
	auditRepo audit.Repository,
	tx TxManager,
	logger logger.Interface,
) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, cmd DeleteInvoiceCommand) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}
	if inv == nil {
		return errors.NewNotFoundError("invoice not found")
	}

	count, err := uc.paymentRepo.CountByInvoiceID(ctx, cmd.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to count invoice payments: %w", err)
	}
	if count > 0 {
		return errors.NewConflictError("invoice has recorded payments and cannot be deleted")
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.invoiceRepo.Delete(txCtx, cmd.InvoiceID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		entry, err := audit.NewEntry(cmd.RequestedBy, audit.ActionInvoiceDeleted, "invoice", inv.InvoiceNumber(), map[string]interface{}{
			"invoice_id": cmd.InvoiceID,
		})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return err
	}

	uc.logger.Infow("invoice deleted", "invoice_id", cmd.InvoiceID, "invoice_number", inv.InvoiceNumber())
	return nil
}
