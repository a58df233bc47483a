package mappers

import (
	"fmt"

	"github.com/boostline-inc/boostline/internal/domain/invoice"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/models"
)

func InvoiceToModel(i *invoice.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:            i.ID(),
		UserID:        i.UserID(),
		InvoiceNumber: i.InvoiceNumber(),
		Status:        string(i.Status()),
		Version:       i.Version(),
		CreatedAt:     i.CreatedAt(),
		UpdatedAt:     i.UpdatedAt(),
	}
}

func InvoiceToDomain(model *models.InvoiceModel) (*invoice.Invoice, error) {
	i, err := invoice.ReconstructInvoice(
		model.ID,
		model.UserID,
		model.InvoiceNumber,
		invoice.InvoiceStatus(model.Status),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct invoice %d: %w", model.ID, err)
	}
	return i, nil
}
