package payment

import "context"

// Repository is the append-mostly ledger store. Rows are created and have
// their status advanced; they are never deleted.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, payID uint) (*Payment, error)
	GetBySID(ctx context.Context, sid string) (*Payment, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Payment, error)
	ListBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*Payment, error)
	CountByInvoiceID(ctx context.Context, invoiceID uint) (int64, error)
}
