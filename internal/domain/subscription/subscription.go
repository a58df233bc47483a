package subscription

import (
	"fmt"
	"time"

	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/id"
)

// Subscription is the aggregate root for a user's association with a plan
// over a time window. The isActive flag is independent of status: a
// cancelled subscription keeps isActive=true through its grace period and
// is only deactivated by the sweep job once endDate has passed. Reads
// never silently expire a row.
type Subscription struct {
	subID                uint
	sid                  string
	userID               uint
	planID               uint
	status               vo.SubscriptionStatus
	isActive             bool
	startDate            time.Time
	endDate              time.Time
	paymentMethod        vo.PaymentMethod
	stripeSubscriptionID *string
	paymentReference     *string
	serviceSettings      map[string]interface{}
	version              int
	createdAt            time.Time
	updatedAt            time.Time
}

// NewCardSubscription creates an active card-paid subscription. Callers
// must only invoke this after the gateway has produced a usable client
// secret; the aggregate itself carries no partial gateway state.
func NewCardSubscription(userID, planID uint, startDate, endDate time.Time, stripeSubscriptionID string) (*Subscription, error) {
	s, err := newSubscription(userID, planID, startDate, endDate, vo.PaymentMethodCard)
	if err != nil {
		return nil, err
	}
	if stripeSubscriptionID == "" {
		return nil, fmt.Errorf("stripe subscription ID is required for card subscriptions")
	}
	s.status = vo.StatusActive
	s.isActive = true
	s.stripeSubscriptionID = &stripeSubscriptionID
	return s, nil
}

// NewCryptoSubscription creates a pending crypto-paid subscription. It is
// activated later by the out-of-band payment confirmation flow, keyed on
// the payment reference.
func NewCryptoSubscription(userID, planID uint, startDate, endDate time.Time, paymentReference string) (*Subscription, error) {
	s, err := newSubscription(userID, planID, startDate, endDate, vo.PaymentMethodCrypto)
	if err != nil {
		return nil, err
	}
	if paymentReference == "" {
		return nil, fmt.Errorf("payment reference is required for crypto subscriptions")
	}
	s.status = vo.StatusPending
	s.isActive = false
	s.paymentReference = &paymentReference
	return s, nil
}

func newSubscription(userID, planID uint, startDate, endDate time.Time, method vo.PaymentMethod) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must not be before start date")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Subscription{
		sid:             sid,
		userID:          userID,
		planID:          planID,
		startDate:       startDate,
		endDate:         endDate,
		paymentMethod:   method,
		serviceSettings: make(map[string]interface{}),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	subID uint,
	sid string,
	userID, planID uint,
	status vo.SubscriptionStatus,
	isActive bool,
	startDate, endDate time.Time,
	paymentMethod vo.PaymentMethod,
	stripeSubscriptionID, paymentReference *string,
	serviceSettings map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if subID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if serviceSettings == nil {
		serviceSettings = make(map[string]interface{})
	}

	return &Subscription{
		subID:                subID,
		sid:                  sid,
		userID:               userID,
		planID:               planID,
		status:               status,
		isActive:             isActive,
		startDate:            startDate,
		endDate:              endDate,
		paymentMethod:        paymentMethod,
		stripeSubscriptionID: stripeSubscriptionID,
		paymentReference:     paymentReference,
		serviceSettings:      serviceSettings,
		version:              version,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.subID }
func (s *Subscription) SID() string                   { return s.sid }
func (s *Subscription) UserID() uint                  { return s.userID }
func (s *Subscription) PlanID() uint                  { return s.planID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) IsActive() bool                { return s.isActive }
func (s *Subscription) StartDate() time.Time          { return s.startDate }
func (s *Subscription) EndDate() time.Time            { return s.endDate }
func (s *Subscription) PaymentMethod() vo.PaymentMethod {
	return s.paymentMethod
}
func (s *Subscription) StripeSubscriptionID() *string { return s.stripeSubscriptionID }
func (s *Subscription) PaymentReference() *string     { return s.paymentReference }
func (s *Subscription) ServiceSettings() map[string]interface{} {
	return s.serviceSettings
}
func (s *Subscription) Version() int         { return s.version }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the subscription ID after persistence.
func (s *Subscription) SetID(subID uint) error {
	if s.subID != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if subID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.subID = subID
	return nil
}

// Activate transitions a pending subscription to active. Used by the
// crypto confirmation flow.
func (s *Subscription) Activate() error {
	if s.status == vo.StatusActive {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot activate subscription with status %s", s.status)
	}

	s.status = vo.StatusActive
	s.isActive = true
	s.touch()
	return nil
}

// Cancel transitions the subscription to cancelled with the given
// effective end date. isActive deliberately stays true for active
// subscriptions: the grace period runs until endDate, after which the
// sweep job deactivates the row.
func (s *Subscription) Cancel(endDate time.Time) error {
	if s.status == vo.StatusCancelled {
		return fmt.Errorf("subscription is already cancelled")
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("cannot cancel subscription with status %s", s.status)
	}
	if endDate.Before(s.startDate) {
		return fmt.Errorf("end date must not be before start date")
	}

	s.status = vo.StatusCancelled
	s.endDate = endDate
	s.touch()
	return nil
}

// Deactivate ends the grace period. Only valid once the end date has
// passed; the caller (sweep job) supplies its notion of now.
func (s *Subscription) Deactivate(now time.Time) error {
	if !s.isActive {
		return nil
	}
	if now.Before(s.endDate) {
		return fmt.Errorf("grace period has not ended yet")
	}

	s.isActive = false
	s.touch()
	return nil
}

// MarkAsExpired marks a subscription whose end date has passed.
func (s *Subscription) MarkAsExpired() error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("cannot mark subscription as expired with status %s", s.status)
	}

	s.status = vo.StatusExpired
	s.isActive = false
	s.touch()
	return nil
}

// UpdateServiceSettings replaces the opaque per-service settings blob
// (channel name and similar delivery details).
func (s *Subscription) UpdateServiceSettings(settings map[string]interface{}) {
	if settings == nil {
		settings = make(map[string]interface{})
	}
	s.serviceSettings = settings
	s.touch()
}

// InGracePeriod reports whether the subscription is cancelled but still
// usable.
func (s *Subscription) InGracePeriod(now time.Time) bool {
	return s.status == vo.StatusCancelled && s.isActive && now.Before(s.endDate)
}

func (s *Subscription) touch() {
	s.updatedAt = biztime.NowUTC()
	s.version++
}

// Validate performs domain-level validation.
func (s *Subscription) Validate() error {
	if s.userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if s.planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.endDate.Before(s.startDate) {
		return fmt.Errorf("end date must not be before start date")
	}
	return nil
}
