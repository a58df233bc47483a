package subscription

import (
	"fmt"
	"time"

	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/id"
)

var validCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
}

// Plan is a purchasable boost tier. Price, currency and billing cycle
// become immutable once an active subscription references the plan;
// only metadata fields (name, description, visibility, sort order) may
// change after that.
type Plan struct {
	planID        uint
	sid           string
	name          string
	description   string
	price         int64
	currency      string
	billingCycle  vo.BillingCycle
	stripePriceID string
	visible       bool
	active        bool
	sortOrder     int
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPlan(name, description string, price int64, currency string,
	billingCycle vo.BillingCycle, stripePriceID string) (*Plan, error) {

	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if price <= 0 {
		return nil, fmt.Errorf("plan price must be positive")
	}
	if !validCurrencies[currency] {
		return nil, fmt.Errorf("invalid currency code: %s", currency)
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPlan, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Plan{
		sid:           sid,
		name:          name,
		description:   description,
		price:         price,
		currency:      currency,
		billingCycle:  billingCycle,
		stripePriceID: stripePriceID,
		visible:       true,
		active:        true,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructPlan(planID uint, sid, name, description string, price int64,
	currency string, billingCycle vo.BillingCycle, stripePriceID string,
	visible, active bool, sortOrder, version int,
	createdAt, updatedAt time.Time) (*Plan, error) {

	if planID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	return &Plan{
		planID:        planID,
		sid:           sid,
		name:          name,
		description:   description,
		price:         price,
		currency:      currency,
		billingCycle:  billingCycle,
		stripePriceID: stripePriceID,
		visible:       visible,
		active:        active,
		sortOrder:     sortOrder,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (p *Plan) ID() uint                      { return p.planID }
func (p *Plan) SID() string                   { return p.sid }
func (p *Plan) Name() string                  { return p.name }
func (p *Plan) Description() string           { return p.description }
func (p *Plan) Price() int64                  { return p.price }
func (p *Plan) Currency() string              { return p.currency }
func (p *Plan) BillingCycle() vo.BillingCycle { return p.billingCycle }
func (p *Plan) StripePriceID() string         { return p.stripePriceID }
func (p *Plan) IsVisible() bool               { return p.visible }
func (p *Plan) IsActive() bool                { return p.active }
func (p *Plan) SortOrder() int                { return p.sortOrder }
func (p *Plan) Version() int                  { return p.version }
func (p *Plan) CreatedAt() time.Time          { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time          { return p.updatedAt }

func (p *Plan) SetID(planID uint) error {
	if p.planID != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if planID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.planID = planID
	return nil
}

// UpdateMetadata changes the fields that stay mutable for the plan's
// whole lifetime.
func (p *Plan) UpdateMetadata(name, description string, visible bool, sortOrder int) error {
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("plan name too long (max 100 characters)")
	}

	p.name = name
	p.description = description
	p.visible = visible
	p.sortOrder = sortOrder
	p.touch()
	return nil
}

// UpdatePricing changes price, currency, cycle and the remote price
// reference. The use case layer must reject this once an active
// subscription references the plan.
func (p *Plan) UpdatePricing(price int64, currency string, billingCycle vo.BillingCycle, stripePriceID string) error {
	if price <= 0 {
		return fmt.Errorf("plan price must be positive")
	}
	if !validCurrencies[currency] {
		return fmt.Errorf("invalid currency code: %s", currency)
	}
	if !billingCycle.IsValid() {
		return fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	p.price = price
	p.currency = currency
	p.billingCycle = billingCycle
	p.stripePriceID = stripePriceID
	p.touch()
	return nil
}

func (p *Plan) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.touch()
}

func (p *Plan) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.touch()
}

// HasStripePrice reports whether the plan carries a remote price
// reference, a precondition for the card checkout path.
func (p *Plan) HasStripePrice() bool {
	return p.stripePriceID != ""
}

func (p *Plan) touch() {
	p.updatedAt = biztime.NowUTC()
	p.version++
}
