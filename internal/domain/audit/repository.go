package audit

import "context"

// Repository is append-only by contract.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByUserID(ctx context.Context, userID uint, limit int) ([]*Entry, error)
	ListByAction(ctx context.Context, action string, limit int) ([]*Entry, error)
}
