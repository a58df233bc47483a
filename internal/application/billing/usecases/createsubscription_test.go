package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

func testPlan(t *testing.T, stripePriceID string) *subscription.Plan {
	t.Helper()
	now := biztime.NowUTC()
	plan, err := subscription.ReconstructPlan(7, "plan_test0001", "Pro", "", 1999, "USD",
		vo.BillingCycleMonth, stripePriceID, true, true, 0, 1, now, now)
	require.NoError(t, err)
	return plan
}

func testUser(t *testing.T, customerID *string) *user.User {
	t.Helper()
	now := biztime.NowUTC()
	usr, err := user.ReconstructUser(42, "jo@example.com", "jo", "$2a$10$hash", user.RoleUser,
		true, customerID, nil, now, now)
	require.NoError(t, err)
	return usr
}

func newCreateUseCase(subRepo *fakeSubscriptionRepo, planRepo *fakePlanRepo, userRepo *fakeUserRepo,
	auditRepo *fakeAuditRepo, gw *fakeGateway, crypto CryptoSettings) *CreateSubscriptionUseCase {
	return NewCreateSubscriptionUseCase(subRepo, planRepo, userRepo, auditRepo, gw, &fakeTx{}, crypto, logger.NewLogger())
}

func TestCreateSubscription_InvalidPaymentMethod(t *testing.T) {
	uc := newCreateUseCase(&fakeSubscriptionRepo{}, &fakePlanRepo{}, &fakeUserRepo{}, &fakeAuditRepo{}, &fakeGateway{}, CryptoSettings{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "iou"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateSubscription_InactivePlanRejected(t *testing.T) {
	now := biztime.NowUTC()
	plan, err := subscription.ReconstructPlan(7, "plan_test0001", "Legacy", "", 999, "USD",
		vo.BillingCycleMonth, "price_x", true, false, 0, 1, now, now)
	require.NoError(t, err)

	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return plan, nil
	}}
	uc := newCreateUseCase(&fakeSubscriptionRepo{}, planRepo, &fakeUserRepo{}, &fakeAuditRepo{}, &fakeGateway{}, CryptoSettings{})

	_, err = uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateSubscription_CryptoDisabled(t *testing.T) {
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, ""), nil
	}}
	uc := newCreateUseCase(&fakeSubscriptionRepo{}, planRepo, &fakeUserRepo{}, &fakeAuditRepo{}, &fakeGateway{},
		CryptoSettings{Enabled: false})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "crypto"})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestCreateSubscription_CryptoCreatesPendingSubscription(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	auditRepo := &fakeAuditRepo{}
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, ""), nil
	}}
	uc := newCreateUseCase(subRepo, planRepo, &fakeUserRepo{}, auditRepo, &fakeGateway{},
		CryptoSettings{Enabled: true, AcceptedCoins: []string{"BTC", "ETH"}})

	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "crypto"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.PaymentReference, "cp_"))
	assert.Equal(t, []string{"BTC", "ETH"}, result.AcceptedCoins)
	assert.Empty(t, result.ClientSecret)

	require.Len(t, subRepo.Created, 1)
	sub := subRepo.Created[0]
	assert.Equal(t, vo.StatusPending, sub.Status())
	assert.False(t, sub.IsActive())
	require.NotNil(t, sub.PaymentReference())
	assert.Equal(t, result.PaymentReference, *sub.PaymentReference())

	assert.Contains(t, auditRepo.actions(), "subscription.created")
}

func TestCreateSubscription_CardPlanWithoutPriceRejected(t *testing.T) {
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, ""), nil
	}}
	uc := newCreateUseCase(&fakeSubscriptionRepo{}, planRepo, &fakeUserRepo{}, &fakeAuditRepo{}, &fakeGateway{}, CryptoSettings{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestCreateSubscription_CardSecretFromExpandedInvoice(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, "price_pro"), nil
	}}
	customerID := "cus_existing"
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return testUser(t, &customerID), nil
	}}
	gw := &fakeGateway{
		CreateSubscriptionFn: func(ctx context.Context, custID, priceID string) (*gateway.Subscription, error) {
			assert.Equal(t, "cus_existing", custID)
			return &gateway.Subscription{
				ID: "sub_remote1",
				LatestInvoice: &gateway.Invoice{
					ID:            "in_1",
					PaymentIntent: &gateway.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"},
				},
			}, nil
		},
	}

	uc := newCreateUseCase(subRepo, planRepo, userRepo, &fakeAuditRepo{}, gw, CryptoSettings{})
	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", result.ClientSecret)
	require.Len(t, subRepo.Created, 1)
	assert.Equal(t, vo.StatusActive, subRepo.Created[0].Status())
	assert.True(t, subRepo.Created[0].IsActive())
}

func TestCreateSubscription_CardSecretFallbackPaymentIntent(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, "price_pro"), nil
	}}
	customerID := "cus_existing"
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return testUser(t, &customerID), nil
	}}

	retrievedInvoice := false
	gw := &fakeGateway{
		// Gateway omits the nested expansion entirely.
		CreateSubscriptionFn: func(ctx context.Context, custID, priceID string) (*gateway.Subscription, error) {
			return &gateway.Subscription{ID: "sub_remote1", LatestInvoice: &gateway.Invoice{ID: "in_1"}}, nil
		},
		RetrieveInvoiceFn: func(ctx context.Context, invoiceID string, expand []string) (*gateway.Invoice, error) {
			retrievedInvoice = true
			assert.Contains(t, expand, "payment_intent")
			return &gateway.Invoice{ID: invoiceID}, nil
		},
		CreatePaymentIntentFn: func(ctx context.Context, custID string, amount int64, currency string, metadata map[string]string) (*gateway.PaymentIntent, error) {
			assert.Equal(t, int64(1999), amount)
			assert.Equal(t, "USD", currency)
			return &gateway.PaymentIntent{ID: "pi_fb", ClientSecret: "pi_fb_secret"}, nil
		},
	}

	uc := newCreateUseCase(subRepo, planRepo, userRepo, &fakeAuditRepo{}, gw, CryptoSettings{})
	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.NoError(t, err)
	assert.True(t, retrievedInvoice)
	assert.Equal(t, "pi_fb_secret", result.ClientSecret)
}

func TestCreateSubscription_NoSecretLeavesNothingBehind(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, "price_pro"), nil
	}}
	customerID := "cus_existing"
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return testUser(t, &customerID), nil
	}}
	gw := &fakeGateway{
		CreateSubscriptionFn: func(ctx context.Context, custID, priceID string) (*gateway.Subscription, error) {
			return &gateway.Subscription{ID: "sub_remote1"}, nil
		},
		CreatePaymentIntentFn: func(ctx context.Context, custID string, amount int64, currency string, metadata map[string]string) (*gateway.PaymentIntent, error) {
			return &gateway.PaymentIntent{ID: "pi_fb", ClientSecret: ""}, nil
		},
	}

	uc := newCreateUseCase(subRepo, planRepo, userRepo, &fakeAuditRepo{}, gw, CryptoSettings{})
	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeGatewayIncomplete, appErr.Type)
	assert.Empty(t, subRepo.Created, "no local row may exist without a client secret")
}

func TestCreateSubscription_StalePriceRejected(t *testing.T) {
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, "price_gone"), nil
	}}
	customerID := "cus_existing"
	userRepo := &fakeUserRepo{GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
		return testUser(t, &customerID), nil
	}}
	gw := &fakeGateway{
		RetrievePriceFn: func(ctx context.Context, priceID string) (*gateway.Price, error) {
			return nil, errors.NewNotFoundError("price not found")
		},
	}

	uc := newCreateUseCase(&fakeSubscriptionRepo{}, planRepo, userRepo, &fakeAuditRepo{}, gw, CryptoSettings{})
	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInvalidGatewayPrice, appErr.Type)
}

func TestCreateSubscription_CustomerRaceAdoptsWinner(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, "price_pro"), nil
	}}

	winnerID := "cus_winner"
	reads := 0
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, userID uint) (*user.User, error) {
			reads++
			if reads == 1 {
				return testUser(t, nil), nil
			}
			// Re-read after the lost race sees the winner's id.
			return testUser(t, &winnerID), nil
		},
		SetStripeCustomerIDIfEmptyF: func(ctx context.Context, userID uint, custID string) (bool, error) {
			return false, nil
		},
	}

	var subscribedCustomer string
	gw := &fakeGateway{
		CreateCustomerFn: func(ctx context.Context, email, name string) (string, error) {
			return "cus_loser", nil
		},
		CreateSubscriptionFn: func(ctx context.Context, custID, priceID string) (*gateway.Subscription, error) {
			subscribedCustomer = custID
			return &gateway.Subscription{
				ID: "sub_remote1",
				LatestInvoice: &gateway.Invoice{
					ID:            "in_1",
					PaymentIntent: &gateway.PaymentIntent{ClientSecret: "secret"},
				},
			}, nil
		},
	}

	uc := newCreateUseCase(subRepo, planRepo, userRepo, &fakeAuditRepo{}, gw, CryptoSettings{})
	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "card"})

	require.NoError(t, err)
	assert.Equal(t, "cus_winner", subscribedCustomer, "loser must adopt the persisted customer id")
}

func TestCreateSubscription_EndDateOneCycleOut(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	planRepo := &fakePlanRepo{GetByIDFn: func(ctx context.Context, planID uint) (*subscription.Plan, error) {
		return testPlan(t, ""), nil
	}}
	uc := newCreateUseCase(subRepo, planRepo, &fakeUserRepo{}, &fakeAuditRepo{}, &fakeGateway{},
		CryptoSettings{Enabled: true})

	before := biztime.NowUTC()
	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{UserID: 42, PlanID: 7, PaymentMethod: "crypto"})
	require.NoError(t, err)

	require.Len(t, subRepo.Created, 1)
	sub := subRepo.Created[0]
	expected := biztime.AddDays(before, 30)
	assert.WithinDuration(t, expected, sub.EndDate(), 5*time.Second)
}
