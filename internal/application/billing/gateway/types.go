package gateway

// Price is the gateway's view of a plan price.
type Price struct {
	ID         string
	UnitAmount int64
	Currency   string
	Interval   string
	Active     bool
}

// PaymentIntent carries the client secret the frontend needs to confirm
// the initial payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Invoice is the gateway's invoice, optionally carrying its expanded
// payment intent. Some gateway API versions omit the nested expansion;
// callers must not assume PaymentIntent is non-nil.
type Invoice struct {
	ID            string
	Status        string
	AmountDue     int64
	Currency      string
	PaymentIntent *PaymentIntent
}

// Subscription is the gateway's subscription, optionally carrying its
// expanded latest invoice.
type Subscription struct {
	ID            string
	Status        string
	LatestInvoice *Invoice
}

// Refund is the result of a refund call.
type Refund struct {
	ID     string
	Status string
}
