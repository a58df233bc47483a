package invoice

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, invID uint) (*Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Invoice, error)
	Delete(ctx context.Context, invID uint) error
}
