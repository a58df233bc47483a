package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostline-inc/boostline/internal/domain/payment"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/mappers"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
	"github.com/boostline-inc/boostline/internal/shared/db"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) payment.Repository {
	return &PaymentRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "error", err, "sid", p.SID())
		return fmt.Errorf("failed to create payment: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

// Update advances a payment's status. Amounts and references never
// change; the ledger stays append-only apart from status.
func (r *PaymentRepositoryImpl) Update(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment", "error", result.Error, "payment_id", p.ID())
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	return nil
}

func (r *PaymentRepositoryImpl) GetByID(ctx context.Context, payID uint) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, payID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by ID", "error", err, "payment_id", payID)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepositoryImpl) GetBySID(ctx context.Context, sid string) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get payment by SID: %w", err)
	}
	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*payment.Payment, error) {
	var payModels []*models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payModels).Error; err != nil {
		r.logger.Errorw("failed to list payments by user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return r.toDomainList(payModels)
}

func (r *PaymentRepositoryImpl) ListBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*payment.Payment, error) {
	var payModels []*models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at DESC").
		Find(&payModels).Error; err != nil {
		r.logger.Errorw("failed to list payments by subscription", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return r.toDomainList(payModels)
}

func (r *PaymentRepositoryImpl) CountByInvoiceID(ctx context.Context, invoiceID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count payments by invoice", "error", err, "invoice_id", invoiceID)
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

func (r *PaymentRepositoryImpl) toDomainList(payModels []*models.PaymentModel) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0, len(payModels))
	for _, model := range payModels {
		p, err := mappers.PaymentToDomain(model)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}
