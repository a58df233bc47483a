package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/mappers"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
	"github.com/boostline-inc/boostline/internal/shared/db"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

// AuditRepositoryImpl is append-only by construction: there is no update
// or delete path.
type AuditRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAuditRepository(db *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, entry *audit.Entry) error {
	model, err := mappers.AuditEntryToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to convert audit entry to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create audit entry", "error", err, "action", entry.Action())
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	entry.SetID(model.ID)
	return nil
}

func (r *AuditRepositoryImpl) ListByUserID(ctx context.Context, userID uint, limit int) ([]*audit.Entry, error) {
	var entryModels []*models.AuditEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		r.logger.Errorw("failed to list audit entries by user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return r.toDomainList(entryModels)
}

func (r *AuditRepositoryImpl) ListByAction(ctx context.Context, action string, limit int) ([]*audit.Entry, error) {
	var entryModels []*models.AuditEntryModel
	if err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at DESC").
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		r.logger.Errorw("failed to list audit entries by action", "error", err, "action", action)
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return r.toDomainList(entryModels)
}

func (r *AuditRepositoryImpl) toDomainList(entryModels []*models.AuditEntryModel) ([]*audit.Entry, error) {
	entries := make([]*audit.Entry, 0, len(entryModels))
	for _, model := range entryModels {
		entry, err := mappers.AuditEntryToDomain(model)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
