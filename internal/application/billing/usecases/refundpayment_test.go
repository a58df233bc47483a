package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/payment"
	pvo "github.com/boostline-inc/boostline/internal/domain/payment/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

func cardCharge(t *testing.T) *payment.Payment {
	t.Helper()
	now := biztime.NowUTC()
	intentID := "pi_charge"
	p, err := payment.ReconstructPayment(11, "pay_test0001", 42, nil, nil,
		pvo.NewMoney(1999, "USD"), pvo.PaymentTypeCharge, pvo.PaymentStatusCompleted,
		"card", &intentID, nil, nil, 1, now, now)
	require.NoError(t, err)
	return p
}

func cryptoCharge(t *testing.T) *payment.Payment {
	t.Helper()
	now := biztime.NowUTC()
	p, err := payment.ReconstructPayment(12, "pay_test0002", 42, nil, nil,
		pvo.NewMoney(1999, "USD"), pvo.PaymentTypeCharge, pvo.PaymentStatusCompleted,
		"crypto", nil, nil, nil, 1, now, now)
	require.NoError(t, err)
	return p
}

func newRefundUseCase(paymentRepo *fakePaymentRepo, auditRepo *fakeAuditRepo, gw *fakeGateway, tx *fakeTx) *RefundPaymentUseCase {
	return NewRefundPaymentUseCase(paymentRepo, auditRepo, gw, tx, logger.NewLogger())
}

func TestRefundPayment_ReasonRequired(t *testing.T) {
	uc := newRefundUseCase(&fakePaymentRepo{}, &fakeAuditRepo{}, &fakeGateway{}, &fakeTx{})

	_, err := uc.Execute(context.Background(), RefundPaymentCommand{PaymentID: 11, RequestedBy: 1})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRefundPayment_GatewayFailureLeavesLedgerUntouched(t *testing.T) {
	original := cardCharge(t)
	paymentRepo := &fakePaymentRepo{GetByIDFn: func(ctx context.Context, payID uint) (*payment.Payment, error) {
		return original, nil
	}}
	gw := &fakeGateway{CreateRefundFn: func(ctx context.Context, paymentIntentID, reason string) (*gateway.Refund, error) {
		return nil, errors.NewGatewayUnavailableError("gateway timed out")
	}}

	uc := newRefundUseCase(paymentRepo, &fakeAuditRepo{}, gw, &fakeTx{})
	_, err := uc.Execute(context.Background(), RefundPaymentCommand{PaymentID: 11, Reason: "duplicate charge", RequestedBy: 1})

	require.Error(t, err)
	assert.True(t, errors.IsGatewayError(err))
	assert.Empty(t, paymentRepo.Created)
	assert.Empty(t, paymentRepo.Updated)
	assert.Equal(t, pvo.PaymentStatusCompleted, original.Status())
}

func TestRefundPayment_SuccessNegatesAmountAndFlipsOriginal(t *testing.T) {
	original := cardCharge(t)
	paymentRepo := &fakePaymentRepo{GetBySIDFn: func(ctx context.Context, sid string) (*payment.Payment, error) {
		return original, nil
	}}
	auditRepo := &fakeAuditRepo{}

	var refundedIntent string
	gw := &fakeGateway{CreateRefundFn: func(ctx context.Context, paymentIntentID, reason string) (*gateway.Refund, error) {
		refundedIntent = paymentIntentID
		return &gateway.Refund{ID: "re_1", Status: "succeeded"}, nil
	}}

	uc := newRefundUseCase(paymentRepo, auditRepo, gw, &fakeTx{})
	result, err := uc.Execute(context.Background(), RefundPaymentCommand{PaymentSID: "pay_test0001", Reason: "duplicate charge", RequestedBy: 1})

	require.NoError(t, err)
	assert.Equal(t, "pi_charge", refundedIntent)

	require.NotNil(t, result.Refund)
	assert.Equal(t, pvo.PaymentTypeRefund, result.Refund.PaymentType())
	assert.Equal(t, int64(-1999), result.Refund.Amount().AmountInCents())
	require.NotNil(t, result.Refund.RefundOfPaymentID())
	assert.Equal(t, original.ID(), *result.Refund.RefundOfPaymentID())

	assert.Equal(t, pvo.PaymentStatusRefunded, original.Status())
	require.Len(t, paymentRepo.Created, 1)
	require.Len(t, paymentRepo.Updated, 1)
	assert.Contains(t, auditRepo.actions(), audit.ActionPaymentRefunded)
}

func TestRefundPayment_AlreadyRefundedConflict(t *testing.T) {
	original := cardCharge(t)
	require.NoError(t, original.MarkAsRefunded())

	paymentRepo := &fakePaymentRepo{GetByIDFn: func(ctx context.Context, payID uint) (*payment.Payment, error) {
		return original, nil
	}}

	uc := newRefundUseCase(paymentRepo, &fakeAuditRepo{}, &fakeGateway{}, &fakeTx{})
	_, err := uc.Execute(context.Background(), RefundPaymentCommand{PaymentID: 11, Reason: "again", RequestedBy: 1})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, paymentRepo.Created)
}

func TestRefundPayment_RefundRowNotRefundable(t *testing.T) {
	now := biztime.NowUTC()
	originalID := uint(11)
	refundRow, err := payment.ReconstructPayment(13, "pay_test0003", 42, nil, nil,
		pvo.NewMoney(-1999, "USD"), pvo.PaymentTypeRefund, pvo.PaymentStatusCompleted,
		"card", nil, nil, &originalID, 1, now, now)
	require.NoError(t, err)

	paymentRepo := &fakePaymentRepo{GetByIDFn: func(ctx context.Context, payID uint) (*payment.Payment, error) {
		return refundRow, nil
	}}

	uc := newRefundUseCase(paymentRepo, &fakeAuditRepo{}, &fakeGateway{}, &fakeTx{})
	_, err = uc.Execute(context.Background(), RefundPaymentCommand{PaymentID: 13, Reason: "no", RequestedBy: 1})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestRefundPayment_LocalFailureAfterRemoteSuccessNeedsReconciliation(t *testing.T) {
	original := cardCharge(t)
	paymentRepo := &fakePaymentRepo{GetByIDFn: func(ctx context.Context, payID uint) (*payment.Payment, error) {
		return original, nil
	}}
	auditRepo := &fakeAuditRepo{}
	tx := &fakeTx{FailWith: errors.NewInternalError("commit failed")}

	uc := newRefundUseCase(paymentRepo, auditRepo, &fakeGateway{}, tx)
	_, err := uc.Execute(context.Background(), RefundPaymentCommand{PaymentID: 11, Reason: "duplicate charge", RequestedBy: 1})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeReconciliationNeeded, appErr.Type)
	assert.Contains(t, auditRepo.actions(), audit.ActionRefundReconcileRequired)
}

func TestRefundPayment_CryptoChargeSkipsGateway(t *testing.T) {
	original := cryptoCharge(t)
	paymentRepo := &fakePaymentRepo{GetByIDFn: func(ctx context.Context, payID uint) (*payment.Payment, error) {
		return original, nil
	}}

	gatewayCalled := false
	gw := &fakeGateway{CreateRefundFn: func(ctx context.Context, paymentIntentID, reason string) (*gateway.Refund, error) {
		gatewayCalled = true
		return &gateway.Refund{ID: "re_x"}, nil
	}}

	uc := newRefundUseCase(paymentRepo, &fakeAuditRepo{}, gw, &fakeTx{})
	result, err := uc.Execute(context.Background(), RefundPaymentCommand{PaymentID: 12, Reason: "manual crypto refund", RequestedBy: 1})

	require.NoError(t, err)
	assert.False(t, gatewayCalled, "crypto charges have no payment intent to refund remotely")
	assert.Equal(t, pvo.PaymentStatusRefunded, original.Status())
	assert.Equal(t, int64(-1999), result.Refund.Amount().AmountInCents())
}
