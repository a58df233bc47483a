package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostline-inc/boostline/internal/domain/invoice"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/mappers"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
	"github.com/boostline-inc/boostline/internal/shared/db"
	"github.com/boostline-inc/boostline/internal/shared/errors"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewInvoiceRepository(db *gorm.DB, logger logger.Interface) invoice.Repository {
	return &InvoiceRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, inv *invoice.Invoice) error {
	model := mappers.InvoiceToModel(inv)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("invoice number already exists")
		}
		r.logger.Errorw("failed to create invoice", "error", err, "invoice_number", inv.InvoiceNumber())
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	inv.SetID(model.ID)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, inv *invoice.Invoice) error {
	model := mappers.InvoiceToModel(inv)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID()).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update invoice", "error", result.Error, "invoice_id", inv.ID())
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	return nil
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, invID uint) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, invID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get invoice by ID", "error", err, "invoice_id", invID)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return mappers.InvoiceToDomain(&model)
}

func (r *InvoiceRepositoryImpl) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Where("invoice_number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get invoice by number", "error", err, "invoice_number", number)
		return nil, fmt.Errorf("failed to get invoice by number: %w", err)
	}
	return mappers.InvoiceToDomain(&model)
}

func (r *InvoiceRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*invoice.Invoice, error) {
	var invModels []*models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&invModels).Error; err != nil {
		r.logger.Errorw("failed to list invoices by user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, 0, len(invModels))
	for _, model := range invModels {
		inv, err := mappers.InvoiceToDomain(model)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *InvoiceRepositoryImpl) Delete(ctx context.Context, invID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Delete(&models.InvoiceModel{}, invID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete invoice", "error", result.Error, "invoice_id", invID)
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("invoice not found")
	}
	return nil
}
