package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/mappers"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
	"github.com/boostline-inc/boostline/internal/shared/db"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model := mappers.PlanToModel(plan)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "name", plan.Name())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("plan created", "plan_id", model.ID, "sid", plan.SID())
	return nil
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *subscription.Plan) error {
	model := mappers.PlanToModel(plan)

	result := r.db.WithContext(ctx).Model(&models.PlanModel{}).
		Where("id = ?", plan.ID()).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"description":     model.Description,
			"price":           model.Price,
			"currency":        model.Currency,
			"billing_cycle":   model.BillingCycle,
			"stripe_price_id": model.StripePriceID,
			"visible":         model.Visible,
			"active":          model.Active,
			"sort_order":      model.SortOrder,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", plan.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, planID uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get plan by SID: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepositoryImpl) List(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return r.toDomainList(planModels)
}

func (r *PlanRepositoryImpl) ListVisible(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	if err := r.db.WithContext(ctx).
		Where("visible = ? AND active = ?", true, true).
		Order("sort_order ASC, id ASC").
		Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list visible plans", "error", err)
		return nil, fmt.Errorf("failed to list visible plans: %w", err)
	}
	return r.toDomainList(planModels)
}

func (r *PlanRepositoryImpl) Delete(ctx context.Context, planID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Delete(&models.PlanModel{}, planID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete plan", "error", result.Error, "plan_id", planID)
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("plan not found")
	}
	return nil
}

func (r *PlanRepositoryImpl) toDomainList(planModels []*models.PlanModel) ([]*subscription.Plan, error) {
	plans := make([]*subscription.Plan, 0, len(planModels))
	for _, model := range planModels {
		plan, err := mappers.PlanToDomain(model)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
