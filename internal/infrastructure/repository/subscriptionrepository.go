package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/boostline-inc/boostline/internal/domain/subscription"
	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/mappers"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
	"github.com/boostline-inc/boostline/internal/shared/db"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := mappers.SubscriptionToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "sid", sub.SID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return sub.SetID(model.ID)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := mappers.SubscriptionToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"is_active":        model.IsActive,
			"end_date":         model.EndDate,
			"service_settings": model.ServiceSettings,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, subID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "error", err, "subscription_id", subID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get subscription by SID: %w", err)
	}
	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions by user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return r.toDomainList(subModels)
}

func (r *SubscriptionRepositoryImpl) ListGraceExpired(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND is_active = ? AND end_date <= ?", vo.StatusCancelled.String(), true, before).
		Order("end_date ASC").
		Limit(limit).
		Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to list grace-expired subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list grace-expired subscriptions: %w", err)
	}
	return r.toDomainList(subModels)
}

func (r *SubscriptionRepositoryImpl) ListActiveExpired(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", vo.StatusActive.String(), before).
		Order("end_date ASC").
		Limit(limit).
		Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to list active-expired subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list active-expired subscriptions: %w", err)
	}
	return r.toDomainList(subModels)
}

func (r *SubscriptionRepositoryImpl) CountActiveByPlanID(ctx context.Context, planID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("plan_id = ? AND status = ?", planID, vo.StatusActive.String()).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active subscriptions", "error", err, "plan_id", planID)
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) toDomainList(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		sub, err := mappers.SubscriptionToDomain(model)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
