// Package gateway defines the capability seam to the external card
// payment provider. The reconciliation engine talks only to this
// interface; provider-specific behavior lives in the infrastructure
// adapter.
package gateway

import "context"

// PaymentGateway wraps the remote card-payment provider. Implementations
// must bound every call with a timeout and translate transport failures
// to gateway_unavailable errors, distinct from explicit rejections.
type PaymentGateway interface {
	// CreateCustomer registers a customer record at the gateway and
	// returns its id.
	CreateCustomer(ctx context.Context, email, name string) (string, error)

	// RetrievePrice fetches a price by its remote reference. A missing
	// price returns a not-found error so callers can distinguish stale
	// local configuration from gateway outage.
	RetrievePrice(ctx context.Context, priceID string) (*Price, error)

	// CreateSubscription creates a remote subscription in incomplete
	// payment state, requesting expansion of the latest invoice and its
	// payment intent.
	CreateSubscription(ctx context.Context, customerID, priceID string) (*Subscription, error)

	RetrieveSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)

	// RetrieveInvoice fetches an invoice, expanding the given nested
	// objects (e.g. "payment_intent").
	RetrieveInvoice(ctx context.Context, invoiceID string, expand []string) (*Invoice, error)

	CreatePaymentIntent(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)

	CreateRefund(ctx context.Context, paymentIntentID, reason string) (*Refund, error)

	ListInvoices(ctx context.Context, customerID string, limit int) ([]*Invoice, error)

	CancelSubscription(ctx context.Context, subscriptionID string) error
}
