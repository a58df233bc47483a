package mappers

import (
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/payment"
	vo "github.com/boostline-inc/boostline/internal/domain/payment/valueobjects"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:                    p.ID(),
		SID:                   p.SID(),
		UserID:                p.UserID(),
		SubscriptionID:        p.SubscriptionID(),
		InvoiceID:             p.InvoiceID(),
		Amount:                p.Amount().AmountInCents(),
		Currency:              p.Amount().Currency(),
		PaymentType:           p.PaymentType().String(),
		Status:                p.Status().String(),
		PaymentMethod:         p.PaymentMethod(),
		StripePaymentIntentID: p.StripePaymentIntentID(),
		RefundReason:          p.RefundReason(),
		RefundOfPaymentID:     p.RefundOfPaymentID(),
		Version:               p.Version(),
		CreatedAt:             p.CreatedAt(),
		UpdatedAt:             p.UpdatedAt(),
	}
}

func PaymentToDomain(model *models.PaymentModel) (*payment.Payment, error) {
	p, err := payment.ReconstructPayment(
		model.ID,
		model.SID,
		model.UserID,
		model.SubscriptionID,
		model.InvoiceID,
		vo.NewMoney(model.Amount, model.Currency),
		vo.PaymentType(model.PaymentType),
		vo.PaymentStatus(model.Status),
		model.PaymentMethod,
		model.StripePaymentIntentID,
		model.RefundReason,
		model.RefundOfPaymentID,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct payment %d: %w", model.ID, err)
	}
	return p, nil
}
