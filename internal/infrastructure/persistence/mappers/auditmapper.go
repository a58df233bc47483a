package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/boostline-inc/boostline/internal/domain/audit"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
)

func AuditEntryToModel(e *audit.Entry) (*models.AuditEntryModel, error) {
	details, err := json.Marshal(e.Details())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit details: %w", err)
	}

	return &models.AuditEntryModel{
		ID:         e.ID(),
		UserID:     e.UserID(),
		Action:     e.Action(),
		EntityType: e.EntityType(),
		EntityID:   e.EntityID(),
		Details:    datatypes.JSON(details),
		CreatedAt:  e.CreatedAt(),
	}, nil
}

func AuditEntryToDomain(model *models.AuditEntryModel) (*audit.Entry, error) {
	details := make(map[string]interface{})
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit details on entry %d: %w", model.ID, err)
		}
	}

	return audit.ReconstructEntry(
		model.ID,
		model.UserID,
		model.Action,
		model.EntityType,
		model.EntityID,
		details,
		model.CreatedAt,
	), nil
}
