package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type txKey struct{}

type txState struct {
	tx          pgx.Tx
	afterCommit []func(ctx context.Context) error
	onRollback  []func(ctx context.Context) error
}

func txFromContext(ctx context.Context) *txState {
	st, _ := ctx.Value(txKey{}).(*txState)
	return st
}

type TxManager struct {
	db     DB
	logger *zap.Logger
}

func NewTxManager(db DB, logger *zap.Logger) *TxManager {
	return &TxManager{db: db, logger: logger}
}

// WithTx commits when fn returns nil and rolls back otherwise. A call made
// with a ctx that already carries a transaction runs fn inside it.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	st := &txState{tx: tx}
	txCtx := context.WithValue(ctx, txKey{}, st)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			m.run(ctx, "rollback", st.onRollback)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			m.logger.Error("tx rollback error", zap.Error(rbErr))
		}
		m.run(ctx, "rollback", st.onRollback)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		m.run(ctx, "rollback", st.onRollback)
		return fmt.Errorf("commit tx: %w", err)
	}
	m.run(ctx, "after commit", st.afterCommit)

	return nil
}

func (m *TxManager) AfterCommit(ctx context.Context, fn func(ctx context.Context) error) {
	if st := txFromContext(ctx); st != nil {
		st.afterCommit = append(st.afterCommit, fn)
		return
	}
	m.run(ctx, "after commit", []func(ctx context.Context) error{fn})
}

func (m *TxManager) OnRollback(ctx context.Context, fn func(ctx context.Context) error) {
	if st := txFromContext(ctx); st != nil {
		st.onRollback = append(st.onRollback, fn)
	}
}

// run executes hooks in registration order; failures are logged, not returned.
func (m *TxManager) run(ctx context.Context, stage string, hooks []func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	for _, h := range hooks {
		if err := h(ctx); err != nil {
			m.logger.Error("tx hook error", zap.String("stage", stage), zap.Error(err))
		}
	}
}
