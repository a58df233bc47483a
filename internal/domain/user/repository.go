package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, userID uint) error

	// SetStripeCustomerIDIfEmpty persists the remote customer reference
	// with compare-and-swap semantics: the write only succeeds while the
	// column is still NULL. It returns false when another request already
	// claimed it, in which case the caller re-reads and reuses the
	// persisted id. Together with the unique index on the column this
	// guarantees exactly one remote customer per user under concurrent
	// subscribe calls.
	SetStripeCustomerIDIfEmpty(ctx context.Context, userID uint, customerID string) (bool, error)
}
