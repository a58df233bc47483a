package usecases

import (
	"context"
	"time"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
)

type fakePlanRepo struct {
	CreateFn      func(ctx context.Context, plan *subscription.Plan) error
	UpdateFn      func(ctx context.Context, plan *subscription.Plan) error
	DeleteFn      func(ctx context.Context, planID uint) error
	GetByIDFn     func(ctx context.Context, planID uint) (*subscription.Plan, error)
	GetBySIDFn    func(ctx context.Context, sid string) (*subscription.Plan, error)
	ListFn        func(ctx context.Context) ([]*subscription.Plan, error)
	ListVisibleFn func(ctx context.Context) ([]*subscription.Plan, error)

	Created []*subscription.Plan
	Updated []*subscription.Plan
	Deleted []uint
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *subscription.Plan) error {
	f.Created = append(f.Created, plan)
	if f.CreateFn != nil {
		return f.CreateFn(ctx, plan)
	}
	return nil
}

func (f *fakePlanRepo) Update(ctx context.Context, plan *subscription.Plan) error {
	f.Updated = append(f.Updated, plan)
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, plan)
	}
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, planID uint) error {
	f.Deleted = append(f.Deleted, planID)
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, planID)
	}
	return nil
}

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

// fakeSubscriptionRepo only serves CountActiveByPlanID here; the rest of
// the interface is inert.
type fakeSubscriptionRepo struct {
	CountActiveByPlanIDFn func(ctx context.Context, planID uint) (int64, error)
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListGraceExpired(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListActiveExpired(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) CountActiveByPlanID(ctx context.Context, planID uint) (int64, error) {
	if f.CountActiveByPlanIDFn != nil {
		return f.CountActiveByPlanIDFn(ctx, planID)
	}
	return 0, nil
}

type fakeAuditRepo struct {
	Entries []*audit.Entry
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *audit.Entry) error {
	f.Entries = append(f.Entries, entry)
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
