package ports

import "context"

// TxManager runs fn inside a transaction carried by ctx. Nested calls join the
// outer transaction. Hooks registered outside a transaction run immediately
// (AfterCommit) or never (OnRollback).
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	AfterCommit(ctx context.Context, fn func(ctx context.Context) error)
	OnRollback(ctx context.Context, fn func(ctx context.Context) error)
}
