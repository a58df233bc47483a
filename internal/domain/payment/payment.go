package payment

import (
	"fmt"
	"time"

	vo "github.com/boostline-inc/boostline/internal/domain/payment/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/id"
)

// Payment is one row of the ledger: a single monetary event. A refund is
// always a new row with a negated amount linking back to its original
// charge, never a destructive edit. The original charge transitions to
// refunded exactly once.
type Payment struct {
	payID                 uint
	sid                   string
	userID                uint
	subscriptionID        *uint
	invoiceID             *uint
	amount                vo.Money
	paymentType           vo.PaymentType
	status                vo.PaymentStatus
	paymentMethod         string
	stripePaymentIntentID *string
	refundReason          *string
	refundOfPaymentID     *uint
	version               int
	createdAt             time.Time
	updatedAt             time.Time
}

// NewChargePayment records a charge against a user, optionally tied to a
// subscription and invoice.
func NewChargePayment(userID uint, subscriptionID, invoiceID *uint, amount vo.Money,
	paymentMethod string, stripePaymentIntentID *string) (*Payment, error) {

	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("charge amount must be positive")
	}
	if paymentMethod == "" {
		return nil, fmt.Errorf("payment method is required")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPayment, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Payment{
		sid:                   sid,
		userID:                userID,
		subscriptionID:        subscriptionID,
		invoiceID:             invoiceID,
		amount:                amount,
		paymentType:           vo.PaymentTypeCharge,
		status:                vo.PaymentStatusCompleted,
		paymentMethod:         paymentMethod,
		stripePaymentIntentID: stripePaymentIntentID,
		version:               1,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// NewRefundPayment derives the compensating ledger row for a charge. The
// caller must persist it and mark the original refunded in the same
// transaction.
func NewRefundPayment(original *Payment, reason string) (*Payment, error) {
	if original == nil {
		return nil, fmt.Errorf("original payment is required")
	}
	if reason == "" {
		return nil, fmt.Errorf("refund reason is required")
	}
	if original.status == vo.PaymentStatusRefunded {
		return nil, fmt.Errorf("payment is already refunded")
	}
	if original.paymentType != vo.PaymentTypeCharge {
		return nil, fmt.Errorf("only charges can be refunded")
	}
	if original.payID == 0 {
		return nil, fmt.Errorf("original payment has not been persisted")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPayment, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment SID: %w", err)
	}

	originalID := original.payID
	now := biztime.NowUTC()
	return &Payment{
		sid:                   sid,
		userID:                original.userID,
		subscriptionID:        original.subscriptionID,
		invoiceID:             original.invoiceID,
		amount:                original.amount.Negated(),
		paymentType:           vo.PaymentTypeRefund,
		status:                vo.PaymentStatusCompleted,
		paymentMethod:         original.paymentMethod,
		stripePaymentIntentID: original.stripePaymentIntentID,
		refundReason:          &reason,
		refundOfPaymentID:     &originalID,
		version:               1,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// ReconstructPayment rebuilds a payment from persistence.
func ReconstructPayment(
	payID uint,
	sid string,
	userID uint,
	subscriptionID, invoiceID *uint,
	amount vo.Money,
	paymentType vo.PaymentType,
	status vo.PaymentStatus,
	paymentMethod string,
	stripePaymentIntentID, refundReason *string,
	refundOfPaymentID *uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if payID == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}
	if !paymentType.IsValid() {
		return nil, fmt.Errorf("invalid payment type: %s", paymentType)
	}

	return &Payment{
		payID:                 payID,
		sid:                   sid,
		userID:                userID,
		subscriptionID:        subscriptionID,
		invoiceID:             invoiceID,
		amount:                amount,
		paymentType:           paymentType,
		status:                status,
		paymentMethod:         paymentMethod,
		stripePaymentIntentID: stripePaymentIntentID,
		refundReason:          refundReason,
		refundOfPaymentID:     refundOfPaymentID,
		version:               version,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}, nil
}

func (p *Payment) ID() uint                        { return p.payID }
func (p *Payment) SID() string                     { return p.sid }
func (p *Payment) UserID() uint                    { return p.userID }
func (p *Payment) SubscriptionID() *uint           { return p.subscriptionID }
func (p *Payment) InvoiceID() *uint                { return p.invoiceID }
func (p *Payment) Amount() vo.Money                { return p.amount }
func (p *Payment) PaymentType() vo.PaymentType     { return p.paymentType }
func (p *Payment) Status() vo.PaymentStatus        { return p.status }
func (p *Payment) PaymentMethod() string           { return p.paymentMethod }
func (p *Payment) StripePaymentIntentID() *string  { return p.stripePaymentIntentID }
func (p *Payment) RefundReason() *string           { return p.refundReason }
func (p *Payment) RefundOfPaymentID() *uint        { return p.refundOfPaymentID }
func (p *Payment) Version() int                    { return p.version }
func (p *Payment) CreatedAt() time.Time            { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time            { return p.updatedAt }

// SetID sets the payment ID after persistence.
func (p *Payment) SetID(payID uint) {
	p.payID = payID
}

// MarkAsRefunded flips the original charge to refunded. The exactly-once
// rule lives here: a second call fails instead of silently succeeding.
func (p *Payment) MarkAsRefunded() error {
	if p.status == vo.PaymentStatusRefunded {
		return fmt.Errorf("payment is already refunded")
	}
	if p.paymentType != vo.PaymentTypeCharge {
		return fmt.Errorf("only charges can be marked refunded")
	}

	p.status = vo.PaymentStatusRefunded
	p.updatedAt = biztime.NowUTC()
	p.version++
	return nil
}

// MarkAsCompleted settles a pending payment (crypto confirmations).
func (p *Payment) MarkAsCompleted() error {
	if p.status == vo.PaymentStatusCompleted {
		return nil
	}
	if p.status != vo.PaymentStatusPending {
		return fmt.Errorf("cannot complete payment with status %s", p.status)
	}

	p.status = vo.PaymentStatusCompleted
	p.updatedAt = biztime.NowUTC()
	p.version++
	return nil
}

// IsRefundable reports whether a refund row may be derived from this
// payment.
func (p *Payment) IsRefundable() bool {
	return p.paymentType == vo.PaymentTypeCharge && p.status != vo.PaymentStatusRefunded
}
