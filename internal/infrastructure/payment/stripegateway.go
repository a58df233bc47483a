// Package payment holds the card-payment gateway adapter. All calls are
// bounded by a per-call timeout; transport failures map to
// gateway_unavailable so callers can tell an outage from a rejection.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/invoice"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/subscription"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	sharedconfig "github.com/boostline-inc/boostline/internal/shared/config"
	apperrors "github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type StripeGateway struct {
	timeout time.Duration
	logger  logger.Interface
}

// NewStripeGateway configures the global stripe client key and returns
// the adapter.
func NewStripeGateway(cfg *sharedconfig.StripeConfig, logger logger.Interface) *StripeGateway {
	stripe.Key = cfg.APIKey

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &StripeGateway{
		timeout: timeout,
		logger:  logger,
	}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Name:   stripe.String(name),
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", g.mapError("create customer", err)
	}
	return cust.ID, nil
}

func (g *StripeGateway) RetrievePrice(ctx context.Context, priceID string) (*gateway.Price, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
	}

	p, err := price.Get(priceID, params)
	if err != nil {
		return nil, g.mapError("retrieve price", err)
	}

	result := &gateway.Price{
		ID:         p.ID,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
		Active:     p.Active,
	}
	if p.Recurring != nil {
		result.Interval = string(p.Recurring.Interval)
	}
	return result, nil
}

// CreateSubscription creates the remote subscription in incomplete state
// and asks for the nested payment intent in one round trip. Some API
// versions ignore the expansion, which is why the engine has fallbacks.
func (g *StripeGateway) CreateSubscription(ctx context.Context, customerID, priceID string) (*gateway.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := subscription.New(params)
	if err != nil {
		return nil, g.mapError("create subscription", err)
	}
	return mapSubscription(sub), nil
}

func (g *StripeGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (*gateway.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	}
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := subscription.Get(subscriptionID, params)
	if err != nil {
		return nil, g.mapError("retrieve subscription", err)
	}
	return mapSubscription(sub), nil
}

func (g *StripeGateway) RetrieveInvoice(ctx context.Context, invoiceID string, expand []string) (*gateway.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.InvoiceParams{
		Params: stripe.Params{Context: ctx},
	}
	for _, e := range expand {
		params.AddExpand(e)
	}

	inv, err := invoice.Get(invoiceID, params)
	if err != nil {
		return nil, g.mapError("retrieve invoice", err)
	}
	return mapInvoice(inv), nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*gateway.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, g.mapError("create payment intent", err)
	}

	return &gateway.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, paymentIntentID, reason string) (*gateway.Refund, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// Stripe only accepts its own reason enum; the free-text reason
	// travels in metadata and in the local ledger row.
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.AddMetadata("reason", reason)

	r, err := refund.New(params)
	if err != nil {
		return nil, g.mapError("create refund", err)
	}

	return &gateway.Refund{
		ID:     r.ID,
		Status: string(r.Status),
	}, nil
}

func (g *StripeGateway) ListInvoices(ctx context.Context, customerID string, limit int) ([]*gateway.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.InvoiceListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Customer:   stripe.String(customerID),
	}
	params.Limit = stripe.Int64(int64(limit))

	var invoices []*gateway.Invoice
	iter := invoice.List(params)
	for iter.Next() {
		invoices = append(invoices, mapInvoice(iter.Invoice()))
	}
	if err := iter.Err(); err != nil {
		return nil, g.mapError("list invoices", err)
	}
	return invoices, nil
}

func (g *StripeGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.SubscriptionCancelParams{
		Params: stripe.Params{Context: ctx},
	}

	if _, err := subscription.Cancel(subscriptionID, params); err != nil {
		return g.mapError("cancel subscription", err)
	}
	return nil
}

// mapError translates stripe client errors into the application's error
// taxonomy. Timeouts and transport failures become gateway_unavailable;
// a missing resource becomes not_found so callers can react to stale
// references; everything else surfaces as a bad request with stripe's
// message.
func (g *StripeGateway) mapError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		g.logger.Errorw("stripe unreachable", "operation", op, "error", err)
		return apperrors.NewGatewayUnavailableError("payment gateway is unreachable", op)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == 404 || stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return apperrors.NewNotFoundError("gateway resource not found", string(stripeErr.Code))
		}
		if stripeErr.HTTPStatusCode >= 500 {
			g.logger.Errorw("stripe server error", "operation", op, "error", err)
			return apperrors.NewGatewayUnavailableError("payment gateway error", op)
		}
		g.logger.Warnw("stripe rejected request", "operation", op, "code", stripeErr.Code, "error", err)
		return apperrors.NewBadRequestError(fmt.Sprintf("gateway rejected %s", op), stripeErr.Msg)
	}

	g.logger.Errorw("stripe call failed", "operation", op, "error", err)
	return apperrors.NewGatewayUnavailableError("payment gateway call failed", op)
}

func mapSubscription(sub *stripe.Subscription) *gateway.Subscription {
	result := &gateway.Subscription{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.LatestInvoice != nil {
		result.LatestInvoice = mapInvoice(sub.LatestInvoice)
	}
	return result
}

func mapInvoice(inv *stripe.Invoice) *gateway.Invoice {
	result := &gateway.Invoice{
		ID:        inv.ID,
		Status:    string(inv.Status),
		AmountDue: inv.AmountDue,
		Currency:  string(inv.Currency),
	}
	if inv.PaymentIntent != nil {
		result.PaymentIntent = &gateway.PaymentIntent{
			ID:           inv.PaymentIntent.ID,
			ClientSecret: inv.PaymentIntent.ClientSecret,
			Status:       string(inv.PaymentIntent.Status),
		}
	}
	return result
}
