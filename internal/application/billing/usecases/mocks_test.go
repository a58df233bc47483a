package usecases

import (
	"context"
	"time"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/payment"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/domain/user"
)

// Function-field fakes. Each test wires only the calls it expects; an
// unwired call returns zero values.

type fakeSubscriptionRepo struct {
	CreateFn              func(ctx context.Context, sub *subscription.Subscription) error
	UpdateFn              func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFn             func(ctx context.Context, subID uint) (*subscription.Subscription, error)
	GetBySIDFn            func(ctx context.Context, sid string) (*subscription.Subscription, error)
	ListByUserIDFn        func(ctx context.Context, userID uint) ([]*subscription.Subscription, error)
	ListGraceExpiredFn    func(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error)
	ListActiveExpiredFn   func(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error)
	CountActiveByPlanIDFn func(ctx context.Context, planID uint) (int64, error)

	Created []*subscription.Subscription
	Updated []*subscription.Subscription
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	f.Created = append(f.Created, sub)
	if f.CreateFn != nil {
		return f.CreateFn(ctx, sub)
	}
	return nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	f.Updated = append(f.Updated, sub)
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, sub)
	}
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, subID)
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	if f.GetBySIDFn != nil {
		return f.GetBySIDFn(ctx, sid)
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	if f.ListByUserIDFn != nil {
		return f.ListByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListGraceExpired(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	if f.ListGraceExpiredFn != nil {
		return f.ListGraceExpiredFn(ctx, before, limit)
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListActiveExpired(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	if f.ListActiveExpiredFn != nil {
		return f.ListActiveExpiredFn(ctx, before, limit)
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) CountActiveByPlanID(ctx context.Context, planID uint) (int64, error) {
	if f.CountActiveByPlanIDFn != nil {
		return f.CountActiveByPlanIDFn(ctx, planID)
	}
	return 0, nil
}

type fakePlanRepo struct {
	GetByIDFn     func(ctx context.Context, planID uint) (*subscription.Plan, error)
	GetBySIDFn    func(ctx context.Context, sid string) (*subscription.Plan, error)
	ListFn        func(ctx context.Context) ([]*subscription.Plan, error)
	ListVisibleFn func(ctx context.Context) ([]*subscription.Plan, error)
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *subscription.Plan) error { return nil }
func (f *fakePlanRepo) Update(ctx context.Context, plan *subscription.Plan) error { return nil }
func (f *fakePlanRepo) Delete(ctx context.Context, planID uint) error             { return nil }

func (f *fakePlanRepo) GetByID(ctx context.Context, planID uint) (*subscription.Plan, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, planID)
	}
	return nil, nil
}

func (f *fakePlanRepo) GetBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	if f.GetBySIDFn != nil {
		return f.GetBySIDFn(ctx, sid)
	}
	return nil, nil
}

func (f *fakePlanRepo) List(ctx context.Context) ([]*subscription.Plan, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakePlanRepo) ListVisible(ctx context.Context) ([]*subscription.Plan, error) {
	if f.ListVisibleFn != nil {
		return f.ListVisibleFn(ctx)
	}
	return nil, nil
}

type fakeUserRepo struct {
	GetByIDFn                   func(ctx context.Context, userID uint) (*user.User, error)
	GetByEmailFn                func(ctx context.Context, email string) (*user.User, error)
	UpdateFn                    func(ctx context.Context, u *user.User) error
	DeleteFn                    func(ctx context.Context, userID uint) error
	SetStripeCustomerIDIfEmptyF func(ctx context.Context, userID uint, customerID string) (bool, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.GetByEmailFn != nil {
		return f.GetByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID uint) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserRepo) SetStripeCustomerIDIfEmpty(ctx context.Context, userID uint, customerID string) (bool, error) {
	if f.SetStripeCustomerIDIfEmptyF != nil {
		return f.SetStripeCustomerIDIfEmptyF(ctx, userID, customerID)
	}
	return true, nil
}

type fakePaymentRepo struct {
	CreateFn           func(ctx context.Context, p *payment.Payment) error
	UpdateFn           func(ctx context.Context, p *payment.Payment) error
	GetByIDFn          func(ctx context.Context, payID uint) (*payment.Payment, error)
	GetBySIDFn         func(ctx context.Context, sid string) (*payment.Payment, error)
	ListByUserIDFn     func(ctx context.Context, userID uint) ([]*payment.Payment, error)
	CountByInvoiceIDFn func(ctx context.Context, invoiceID uint) (int64, error)

	Created []*payment.Payment
	Updated []*payment.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	f.Created = append(f.Created, p)
	if f.CreateFn != nil {
		return f.CreateFn(ctx, p)
	}
	return nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, p *payment.Payment) error {
	f.Updated = append(f.Updated, p)
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, p)
	}
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, payID uint) (*payment.Payment, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, payID)
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetBySID(ctx context.Context, sid string) (*payment.Payment, error) {
	if f.GetBySIDFn != nil {
		return f.GetBySIDFn(ctx, sid)
	}
	return nil, nil
}

func (f *fakePaymentRepo) ListByUserID(ctx context.Context, userID uint) ([]*payment.Payment, error) {
	if f.ListByUserIDFn != nil {
		return f.ListByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakePaymentRepo) ListBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*payment.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) CountByInvoiceID(ctx context.Context, invoiceID uint) (int64, error) {
	if f.CountByInvoiceIDFn != nil {
		return f.CountByInvoiceIDFn(ctx, invoiceID)
	}
	return 0, nil
}

type fakeAuditRepo struct {
	CreateFn func(ctx context.Context, entry *audit.Entry) error
	Entries  []*audit.Entry
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *audit.Entry) error {
	f.Entries = append(f.Entries, entry)
	if f.CreateFn != nil {
		return f.CreateFn(ctx, entry)
	}
	return nil
}

func (f *fakeAuditRepo) ListByUserID(ctx context.Context, userID uint, limit int) ([]*audit.Entry, error) {
	return nil, nil
}

func (f *fakeAuditRepo) ListByAction(ctx context.Context, action string, limit int) ([]*audit.Entry, error) {
	return nil, nil
}

func (f *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		out = append(out, e.Action())
	}
	return out
}

type fakeGateway struct {
	CreateCustomerFn       func(ctx context.Context, email, name string) (string, error)
	RetrievePriceFn        func(ctx context.Context, priceID string) (*gateway.Price, error)
	CreateSubscriptionFn   func(ctx context.Context, customerID, priceID string) (*gateway.Subscription, error)
	RetrieveSubscriptionFn func(ctx context.Context, subscriptionID string) (*gateway.Subscription, error)
	RetrieveInvoiceFn      func(ctx context.Context, invoiceID string, expand []string) (*gateway.Invoice, error)
	CreatePaymentIntentFn  func(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*gateway.PaymentIntent, error)
	CreateRefundFn         func(ctx context.Context, paymentIntentID, reason string) (*gateway.Refund, error)
	ListInvoicesFn         func(ctx context.Context, customerID string, limit int) ([]*gateway.Invoice, error)
	CancelSubscriptionFn   func(ctx context.Context, subscriptionID string) error
}

func (f *fakeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	if f.CreateCustomerFn != nil {
		return f.CreateCustomerFn(ctx, email, name)
	}
	return "cus_test", nil
}

func (f *fakeGateway) RetrievePrice(ctx context.Context, priceID string) (*gateway.Price, error) {
	if f.RetrievePriceFn != nil {
		return f.RetrievePriceFn(ctx, priceID)
	}
	return &gateway.Price{ID: priceID, Active: true}, nil
}

func (f *fakeGateway) CreateSubscription(ctx context.Context, customerID, priceID string) (*gateway.Subscription, error) {
	if f.CreateSubscriptionFn != nil {
		return f.CreateSubscriptionFn(ctx, customerID, priceID)
	}
	return &gateway.Subscription{ID: "sub_remote"}, nil
}

func (f *fakeGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (*gateway.Subscription, error) {
	if f.RetrieveSubscriptionFn != nil {
		return f.RetrieveSubscriptionFn(ctx, subscriptionID)
	}
	return nil, nil
}

func (f *fakeGateway) RetrieveInvoice(ctx context.Context, invoiceID string, expand []string) (*gateway.Invoice, error) {
	if f.RetrieveInvoiceFn != nil {
		return f.RetrieveInvoiceFn(ctx, invoiceID, expand)
	}
	return nil, nil
}

func (f *fakeGateway) CreatePaymentIntent(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*gateway.PaymentIntent, error) {
	if f.CreatePaymentIntentFn != nil {
		return f.CreatePaymentIntentFn(ctx, customerID, amount, currency, metadata)
	}
	return nil, nil
}

func (f *fakeGateway) CreateRefund(ctx context.Context, paymentIntentID, reason string) (*gateway.Refund, error) {
	if f.CreateRefundFn != nil {
		return f.CreateRefundFn(ctx, paymentIntentID, reason)
	}
	return &gateway.Refund{ID: "re_test", Status: "succeeded"}, nil
}

func (f *fakeGateway) ListInvoices(ctx context.Context, customerID string, limit int) ([]*gateway.Invoice, error) {
	if f.ListInvoicesFn != nil {
		return f.ListInvoicesFn(ctx, customerID, limit)
	}
	return nil, nil
}

func (f *fakeGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if f.CancelSubscriptionFn != nil {
		return f.CancelSubscriptionFn(ctx, subscriptionID)
	}
	return nil
}

// fakeTx runs the transaction body inline. FailWith makes the whole
// transaction fail after running the body, mimicking a commit error.
type fakeTx struct {
	FailWith error
}

func (f *fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.FailWith
}
