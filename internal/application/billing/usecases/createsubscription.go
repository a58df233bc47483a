package usecases

import (
	"context"
	"fmt"

	"github.com/boostline-inc/boostline/internal/application/billing/gateway"
	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/domain/user"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/id"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	UserID          uint
	PlanSID         string // Stripe-style plan SID (takes precedence over PlanID)
	PlanID          uint
	PaymentMethod   string
	ServiceSettings map[string]interface{}
}

type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription
	// ClientSecret is set on the card path and is never empty there.
	ClientSecret string
	// PaymentReference and AcceptedCoins are set on the crypto path.
	PaymentReference string
	AcceptedCoins    []string
}

// CreateSubscriptionUseCase owns subscription creation for both payment
// methods. On the card path it keeps local state consistent with the
// gateway by ordering: no Subscription row is written until a usable
// client secret exists, so a failure in the middle leaves nothing behind.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	userRepo         user.Repository
	auditRepo        audit.Repository
	gw               gateway.PaymentGateway
	tx               TxManager
	crypto           CryptoSettings
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	gw gateway.PaymentGateway,
	tx TxManager,
	crypto CryptoSettings,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		userRepo:         userRepo,
		auditRepo:        auditRepo,
		gw:               gw,
		tx:               tx,
		crypto:           crypto,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	method, err := vo.ParsePaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return nil, errors.NewValidationError("invalid payment method", cmd.PaymentMethod)
	}

	plan, err := uc.resolvePlan(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive() {
		return nil, errors.NewValidationError("plan is not available")
	}

	if method.IsCrypto() {
		return uc.executeCrypto(ctx, cmd, plan)
	}
	return uc.executeCard(ctx, cmd, plan)
}

func (uc *CreateSubscriptionUseCase) resolvePlan(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Plan, error) {
	var plan *subscription.Plan
	var err error

	if cmd.PlanSID != "" {
		plan, err = uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	} else {
		plan, err = uc.planRepo.GetByID(ctx, cmd.PlanID)
	}
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}
	return plan, nil
}

// executeCrypto creates a pending subscription and hands the caller a
// human-readable transaction reference. No gateway call happens here;
// activation is driven by the out-of-band payment confirmation.
func (uc *CreateSubscriptionUseCase) executeCrypto(ctx context.Context, cmd CreateSubscriptionCommand, plan *subscription.Plan) (*CreateSubscriptionResult, error) {
	if !uc.crypto.Enabled {
		return nil, errors.NewConflictError("crypto payments are disabled")
	}

	reference, err := id.GenerateWithPrefix(id.PrefixCryptoTxn, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment reference: %w", err)
	}

	startDate := biztime.NowUTC()
	endDate := biztime.AddDays(startDate, plan.BillingCycle().Days())

	sub, err := subscription.NewCryptoSubscription(cmd.UserID, plan.ID(), startDate, endDate, reference)
	if err != nil {
		return nil, errors.NewValidationError("invalid subscription", err.Error())
	}
	if cmd.ServiceSettings != nil {
		sub.UpdateServiceSettings(cmd.ServiceSettings)
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return uc.writeAudit(txCtx, cmd.UserID, audit.ActionSubscriptionCreated, sub.SID(), map[string]interface{}{
			"plan_id":           plan.ID(),
			"payment_method":    "crypto",
			"payment_reference": reference,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to persist crypto subscription", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	uc.logger.Infow("crypto subscription created",
		"subscription_sid", sub.SID(),
		"user_id", cmd.UserID,
		"payment_reference", reference,
	)

	return &CreateSubscriptionResult{
		Subscription:     sub,
		PaymentReference: reference,
		AcceptedCoins:    uc.crypto.AcceptedCoins,
	}, nil
}

func (uc *CreateSubscriptionUseCase) executeCard(ctx context.Context, cmd CreateSubscriptionCommand, plan *subscription.Plan) (*CreateSubscriptionResult, error) {
	if !plan.HasStripePrice() {
		return nil, errors.NewConflictError("plan has no gateway price configured")
	}

	usr, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if usr == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	customerID, err := uc.ensureCustomer(ctx, usr)
	if err != nil {
		return nil, err
	}

	// Validate the plan's remote price before creating anything, so stale
	// local configuration fails loudly instead of producing a broken
	// remote subscription.
	price, err := uc.gw.RetrievePrice(ctx, plan.StripePriceID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidGatewayPriceError("plan price does not exist at the gateway", plan.StripePriceID())
		}
		return nil, err
	}
	if price == nil || !price.Active {
		return nil, errors.NewInvalidGatewayPriceError("plan price is not active at the gateway", plan.StripePriceID())
	}

	remoteSub, err := uc.gw.CreateSubscription(ctx, customerID, plan.StripePriceID())
	if err != nil {
		uc.logger.Errorw("failed to create remote subscription", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	clientSecret, err := uc.resolveClientSecret(ctx, customerID, plan, remoteSub)
	if err != nil {
		// No local row exists yet; the failed attempt leaves nothing to
		// roll back.
		return nil, err
	}

	startDate := biztime.NowUTC()
	endDate := biztime.AddDays(startDate, plan.BillingCycle().Days())

	sub, err := subscription.NewCardSubscription(cmd.UserID, plan.ID(), startDate, endDate, remoteSub.ID)
	if err != nil {
		return nil, errors.NewValidationError("invalid subscription", err.Error())
	}
	if cmd.ServiceSettings != nil {
		sub.UpdateServiceSettings(cmd.ServiceSettings)
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		usr.SetStripeSubscriptionID(remoteSub.ID)
		if err := uc.userRepo.Update(txCtx, usr); err != nil {
			return fmt.Errorf("failed to update user subscription reference: %w", err)
		}
		return uc.writeAudit(txCtx, cmd.UserID, audit.ActionSubscriptionCreated, sub.SID(), map[string]interface{}{
			"plan_id":                plan.ID(),
			"payment_method":         "card",
			"stripe_subscription_id": remoteSub.ID,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to persist card subscription", "error", err,
			"user_id", cmd.UserID,
			"stripe_subscription_id", remoteSub.ID,
		)
		return nil, err
	}

	uc.logger.Infow("card subscription created",
		"subscription_sid", sub.SID(),
		"user_id", cmd.UserID,
		"plan_id", plan.ID(),
	)

	return &CreateSubscriptionResult{
		Subscription: sub,
		ClientSecret: clientSecret,
	}, nil
}

// ensureCustomer returns the user's remote customer id, creating one when
// absent. The persisted id is the idempotency anchor: the write is a
// compare-and-swap against a NULL column backed by a unique index, so two
// racing subscribe calls converge on a single remote customer. The loser
// re-reads and adopts the winner's id.
func (uc *CreateSubscriptionUseCase) ensureCustomer(ctx context.Context, usr *user.User) (string, error) {
	if existing := usr.StripeCustomerID(); existing != nil && *existing != "" {
		return *existing, nil
	}

	customerID, err := uc.gw.CreateCustomer(ctx, usr.Email(), usr.Username())
	if err != nil {
		uc.logger.Errorw("failed to create remote customer", "error", err, "user_id", usr.ID())
		return "", err
	}

	claimed, err := uc.userRepo.SetStripeCustomerIDIfEmpty(ctx, usr.ID(), customerID)
	if err != nil {
		return "", fmt.Errorf("failed to persist customer reference: %w", err)
	}
	if claimed {
		return customerID, nil
	}

	// Lost the race: another request persisted a customer first. Adopt
	// its id; the customer created above stays unused at the gateway.
	fresh, err := uc.userRepo.GetByID(ctx, usr.ID())
	if err != nil {
		return "", fmt.Errorf("failed to re-read user after customer race: %w", err)
	}
	if fresh == nil || fresh.StripeCustomerID() == nil || *fresh.StripeCustomerID() == "" {
		return "", errors.NewInternalError("customer reference missing after concurrent write")
	}

	uc.logger.Warnw("concurrent customer creation detected, reusing persisted id",
		"user_id", usr.ID(),
		"orphaned_customer_id", customerID,
	)
	return *fresh.StripeCustomerID(), nil
}

// resolveClientSecret obtains the client secret for the initial payment
// in three fallback tiers. Tier 3 exists because some gateway API
// versions omit the nested payment intent expansion entirely. The method
// returns a non-empty secret or an error, never an empty string.
func (uc *CreateSubscriptionUseCase) resolveClientSecret(ctx context.Context, customerID string, plan *subscription.Plan, remoteSub *gateway.Subscription) (string, error) {
	// Tier 1: the expanded invoice already carries the payment intent.
	if remoteSub.LatestInvoice != nil && remoteSub.LatestInvoice.PaymentIntent != nil {
		if secret := remoteSub.LatestInvoice.PaymentIntent.ClientSecret; secret != "" {
			return secret, nil
		}
	}

	// Tier 2: re-fetch the invoice with an explicit expansion.
	if remoteSub.LatestInvoice != nil && remoteSub.LatestInvoice.ID != "" {
		inv, err := uc.gw.RetrieveInvoice(ctx, remoteSub.LatestInvoice.ID, []string{"payment_intent"})
		if err != nil {
			uc.logger.Warnw("failed to re-fetch invoice for client secret",
				"error", err,
				"invoice_id", remoteSub.LatestInvoice.ID,
			)
		} else if inv != nil && inv.PaymentIntent != nil && inv.PaymentIntent.ClientSecret != "" {
			return inv.PaymentIntent.ClientSecret, nil
		}
	}

	// Tier 3: create a fresh payment intent for the plan's price against
	// the same customer.
	intent, err := uc.gw.CreatePaymentIntent(ctx, customerID, plan.Price(), plan.Currency(), map[string]string{
		"subscription_id": remoteSub.ID,
		"plan_sid":        plan.SID(),
	})
	if err != nil {
		uc.logger.Errorw("failed to create fallback payment intent",
			"error", err,
			"stripe_subscription_id", remoteSub.ID,
		)
		return "", err
	}
	if intent == nil || intent.ClientSecret == "" {
		return "", errors.NewGatewayIncompleteError("gateway returned no client secret for the initial payment")
	}

	uc.logger.Infow("client secret resolved via fallback payment intent",
		"stripe_subscription_id", remoteSub.ID,
	)
	return intent.ClientSecret, nil
}

func (uc *CreateSubscriptionUseCase) writeAudit(ctx context.Context, userID uint, action, entityID string, details map[string]interface{}) error {
	entry, err := audit.NewEntry(userID, action, "subscription", entityID, details)
	if err != nil {
		return fmt.Errorf("failed to build audit entry: %w", err)
	}
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}
