package shared

import "context"

// TxRunner runs fn inside one database transaction. Repositories called with
// the ctx passed to fn join that transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
