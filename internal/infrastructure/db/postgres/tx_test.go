package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestTxManager_WithTx(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name       string
		fnErr      error
		commitErr  error
		wantCalls  []string
		wantErrIs  error
	}{
		{
			name:       "commit runs after commit hooks",
			wantCalls:  []string{"after"},
		},
		{
			name:      "fn error rolls back and runs rollback hooks",
			fnErr:     errBoom,
			wantCalls: []string{"rollback"},
			wantErrIs: errBoom,
		},
		{
			name:       "failed commit runs rollback hooks",
			commitErr:  errBoom,
			wantCalls:  []string{"rollback"},
			wantErrIs:  errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectBegin()
			switch {
			case tt.fnErr != nil:
				mock.ExpectRollback()
			case tt.commitErr != nil:
				mock.ExpectCommit().WillReturnError(tt.commitErr)
			default:
				mock.ExpectCommit()
			}

			m := NewTxManager(mock, zap.NewNop())
			var calls []string
			err := m.WithTx(context.Background(), func(ctx context.Context) error {
				m.AfterCommit(ctx, func(context.Context) error {
					calls = append(calls, "after")
					return nil
				})
				m.OnRollback(ctx, func(context.Context) error {
					calls = append(calls, "rollback")
					return nil
				})
				assert.Empty(t, calls, "hooks must wait for the tx outcome")
				return tt.fnErr
			})

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := NewTxManager(mock, zap.NewNop())
	var inner Querier
	err := m.WithTx(context.Background(), func(ctx context.Context) error {
		return m.WithTx(ctx, func(ctx context.Context) error {
			inner = Conn(ctx, mock)
			return nil
		})
	})

	require.NoError(t, err)
	assert.NotNil(t, inner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_PanicRollsBack(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	m := NewTxManager(mock, zap.NewNop())
	rolledBack := false
	assert.PanicsWithValue(t, "kaboom", func() {
		_ = m.WithTx(context.Background(), func(ctx context.Context) error {
			m.OnRollback(ctx, func(context.Context) error {
				rolledBack = true
				return nil
			})
			panic("kaboom")
		})
	})

	assert.True(t, rolledBack)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_HooksOutsideTx(t *testing.T) {
	m := NewTxManager(newMock(t), zap.NewNop())
	ctx := context.Background()

	ran := false
	m.AfterCommit(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	m.OnRollback(ctx, func(context.Context) error {
		t.Fatal("rollback hook must not run without a transaction")
		return nil
	})

	assert.True(t, ran)
}

func TestTxManager_BeginError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	err := NewTxManager(mock, zap.NewNop()).WithTx(context.Background(), func(context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})

	require.ErrorContains(t, err, "begin tx")
}
