package subscription

import (
	"context"
	"time"
)

// SubscriptionRepository persists subscription aggregates. Only the
// reconciliation engine (billing use cases) and the sweep job mutate rows
// through it.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, subID uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Subscription, error)
	// ListGraceExpired returns cancelled subscriptions whose grace period
	// ended before the given time but whose isActive flag is still set.
	ListGraceExpired(ctx context.Context, before time.Time, limit int) ([]*Subscription, error)
	// ListActiveExpired returns active subscriptions whose end date passed
	// without renewal.
	ListActiveExpired(ctx context.Context, before time.Time, limit int) ([]*Subscription, error)
	CountActiveByPlanID(ctx context.Context, planID uint) (int64, error)
}

// PlanRepository persists the plan catalog. Plans are written by the
// administrative use cases and read by everything else.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	Update(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, planID uint) (*Plan, error)
	GetBySID(ctx context.Context, sid string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
	ListVisible(ctx context.Context) ([]*Plan, error)
	Delete(ctx context.Context, planID uint) error
}
