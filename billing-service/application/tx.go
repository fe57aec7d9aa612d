package application

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction travels in the returned context; repositories that honor it
// enlist their writes, repositories that must not (the attempt log) ignore
// it and commit on their own connection.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
