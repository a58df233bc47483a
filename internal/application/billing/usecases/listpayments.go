package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/payment"
)

type ListUserPaymentsCommand struct {
	UserID uint
}

type ListUserPaymentsResult struct {
	Payments []*payment.Payment
}

// ListUserPaymentsUseCase returns the user's ledger rows, refund rows
// included, newest first as the repository orders them.
type ListUserPaymentsUseCase struct {
	paymentRepo payment.Repository
}

func NewListUserPaymentsUseCase(paymentRepo payment.Repository) *ListUserPaymentsUseCase {
	return &ListUserPaymentsUseCase{paymentRepo: paymentRepo}
}

func (uc *ListUserPaymentsUseCase) Execute(ctx context.Context, cmd ListUserPaymentsCommand) (*ListUserPaymentsResult, error) {
	payments, err := uc.paymentRepo.ListByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &ListUserPaymentsResult{Payments: payments}, nil
}
