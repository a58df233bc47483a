package handlers

import (
	"time"

	"github.com/boostline-inc/boostline/internal/domain/payment"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/domain/user"
)

type subscriptionResponse struct {
	SID                  string                 `json:"sid"`
	PlanID               uint                   `json:"plan_id"`
	Status               string                 `json:"status"`
	IsActive             bool                   `json:"is_active"`
	PaymentMethod        string                 `json:"payment_method"`
	StartDate            time.Time              `json:"start_date"`
	EndDate              time.Time              `json:"end_date"`
	StripeSubscriptionID *string                `json:"stripe_subscription_id,omitempty"`
	PaymentReference     *string                `json:"payment_reference,omitempty"`
	ServiceSettings      map[string]interface{} `json:"service_settings,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
}

func newSubscriptionResponse(sub *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		SID:                  sub.SID(),
		PlanID:               sub.PlanID(),
		Status:               string(sub.Status()),
		IsActive:             sub.IsActive(),
		PaymentMethod:        string(sub.PaymentMethod()),
		StartDate:            sub.StartDate(),
		EndDate:              sub.EndDate(),
		StripeSubscriptionID: sub.StripeSubscriptionID(),
		PaymentReference:     sub.PaymentReference(),
		ServiceSettings:      sub.ServiceSettings(),
		CreatedAt:            sub.CreatedAt(),
	}
}

func newSubscriptionResponses(subs []*subscription.Subscription) []subscriptionResponse {
	out := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, newSubscriptionResponse(sub))
	}
	return out
}

type planResponse struct {
	SID          string `json:"sid"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	BillingCycle string `json:"billing_cycle"`
	SortOrder    int    `json:"sort_order"`
}

func newPlanResponse(plan *subscription.Plan) planResponse {
	return planResponse{
		SID:          plan.SID(),
		Name:         plan.Name(),
		Description:  plan.Description(),
		Price:        plan.Price(),
		Currency:     plan.Currency(),
		BillingCycle: string(plan.BillingCycle()),
		SortOrder:    plan.SortOrder(),
	}
}

// adminPlanResponse adds the operational fields the public catalog view
// hides.
type adminPlanResponse struct {
	planResponse
	StripePriceID string    `json:"stripe_price_id"`
	Visible       bool      `json:"visible"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newAdminPlanResponse(plan *subscription.Plan) adminPlanResponse {
	return adminPlanResponse{
		planResponse:  newPlanResponse(plan),
		StripePriceID: plan.StripePriceID(),
		Visible:       plan.IsVisible(),
		Active:        plan.IsActive(),
		CreatedAt:     plan.CreatedAt(),
		UpdatedAt:     plan.UpdatedAt(),
	}
}

type paymentResponse struct {
	SID               string    `json:"sid"`
	SubscriptionID    *uint     `json:"subscription_id,omitempty"`
	InvoiceID         *uint     `json:"invoice_id,omitempty"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	PaymentType       string    `json:"payment_type"`
	PaymentMethod     string    `json:"payment_method"`
	RefundReason      *string   `json:"refund_reason,omitempty"`
	RefundOfPaymentID *uint     `json:"refund_of_payment_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func newPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		SID:               p.SID(),
		SubscriptionID:    p.SubscriptionID(),
		InvoiceID:         p.InvoiceID(),
		Amount:            p.Amount().AmountInCents(),
		Currency:          p.Amount().Currency(),
		Status:            string(p.Status()),
		PaymentType:       string(p.PaymentType()),
		PaymentMethod:     p.PaymentMethod(),
		RefundReason:      p.RefundReason(),
		RefundOfPaymentID: p.RefundOfPaymentID(),
		CreatedAt:         p.CreatedAt(),
	}
}

type userResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func newUserResponse(usr *user.User) userResponse {
	return userResponse{
		ID:            usr.ID(),
		Email:         usr.Email(),
		Username:      usr.Username(),
		Role:          string(usr.Role()),
		EmailVerified: usr.IsEmailVerified(),
		CreatedAt:     usr.CreatedAt(),
	}
}
