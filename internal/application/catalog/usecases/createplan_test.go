package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

func TestCreatePlan_Success(t *testing.T) {
	planRepo := &fakePlanRepo{}
	auditRepo := &fakeAuditRepo{}
	uc := NewCreatePlanUseCase(planRepo, auditRepo, logger.NewLogger())

	result, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:          "Pro",
		Description:   "The works",
		Price:         1999,
		Currency:      "USD",
		BillingCycle:  "month",
		StripePriceID: "price_pro",
		Visible:       true,
		RequestedBy:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Pro", result.Plan.Name())
	assert.Equal(t, vo.BillingCycleMonth, result.Plan.BillingCycle())
	assert.True(t, result.Plan.IsVisible())
	assert.True(t, result.Plan.IsActive())
	require.Len(t, planRepo.Created, 1)
	assert.Contains(t, auditRepo.actions(), audit.ActionPlanCreated)
}

func TestCreatePlan_HiddenWithSortOrder(t *testing.T) {
	planRepo := &fakePlanRepo{}
	uc := NewCreatePlanUseCase(planRepo, &fakeAuditRepo{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:         "Internal",
		Price:        999,
		Currency:     "USD",
		BillingCycle: "week",
		SortOrder:    5,
	})

	require.NoError(t, err)
	assert.False(t, result.Plan.IsVisible())
	assert.Equal(t, 5, result.Plan.SortOrder())
}

func TestCreatePlan_InvalidBillingCycle(t *testing.T) {
	uc := NewCreatePlanUseCase(&fakePlanRepo{}, &fakeAuditRepo{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:         "Pro",
		Price:        1999,
		Currency:     "USD",
		BillingCycle: "decade",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreatePlan_DuplicateNameConflict(t *testing.T) {
	planRepo := &fakePlanRepo{CreateFn: func(ctx context.Context, plan *subscription.Plan) error {
		return fmt.Errorf("Error 1062: Duplicate entry 'Pro' for key 'plans.idx_plans_name'")
	}}
	uc := NewCreatePlanUseCase(planRepo, &fakeAuditRepo{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:         "Pro",
		Price:        1999,
		Currency:     "USD",
		BillingCycle: "month",
		Visible:      true,
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestDeletePlan_BlockedByActiveSubscriptions(t *testing.T) {
	plan := catalogPlan(t)
	planRepo := &fakePlanRepo{GetBySIDFn: func(ctx context.Context, sid string) (*subscription.Plan, error) {
		return plan, nil
	}}
	subRepo := &fakeSubscriptionRepo{CountActiveByPlanIDFn: func(ctx context.Context, planID uint) (int64, error) {
		return 2, nil
	}}

	uc := NewDeletePlanUseCase(planRepo, subRepo, &fakeAuditRepo{}, logger.NewLogger())
	err := uc.Execute(context.Background(), DeletePlanCommand{PlanSID: "plan_test0001", RequestedBy: 1})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, planRepo.Deleted)
}

func TestDeletePlan_Success(t *testing.T) {
	plan := catalogPlan(t)
	planRepo := &fakePlanRepo{GetBySIDFn: func(ctx context.Context, sid string) (*subscription.Plan, error) {
		return plan, nil
	}}
	auditRepo := &fakeAuditRepo{}

	uc := NewDeletePlanUseCase(planRepo, &fakeSubscriptionRepo{}, auditRepo, logger.NewLogger())
	err := uc.Execute(context.Background(), DeletePlanCommand{PlanSID: "plan_test0001", RequestedBy: 1})

	require.NoError(t, err)
	assert.Equal(t, []uint{7}, planRepo.Deleted)
	assert.Contains(t, auditRepo.actions(), audit.ActionPlanDeleted)
}

func TestListPlans_VisibilityFilter(t *testing.T) {
	visible := catalogPlan(t)
	planRepo := &fakePlanRepo{
		ListVisibleFn: func(ctx context.Context) ([]*subscription.Plan, error) {
			return []*subscription.Plan{visible}, nil
		},
		ListFn: func(ctx context.Context) ([]*subscription.Plan, error) {
			return []*subscription.Plan{visible, visible}, nil
		},
	}

	uc := NewListPlansUseCase(planRepo)

	public, err := uc.Execute(context.Background(), ListPlansCommand{})
	require.NoError(t, err)
	assert.Len(t, public.Plans, 1)

	all, err := uc.Execute(context.Background(), ListPlansCommand{IncludeHidden: true})
	require.NoError(t, err)
	assert.Len(t, all.Plans, 2)
}
