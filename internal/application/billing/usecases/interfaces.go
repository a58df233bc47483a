package usecases

import "context"

// TxManager runs a function inside one database transaction so the
// subscription, ledger and audit writes of a single operation commit or
// roll back as one logical unit.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CryptoSettings gates the asynchronous crypto payment path.
type CryptoSettings struct {
	Enabled       bool
	AcceptedCoins []string
}
