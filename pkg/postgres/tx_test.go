package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx implements only the pgx.Tx methods WithTx calls.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
	opts     pgx.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.opts = opts
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTx(t *testing.T) {
	errQuery := errors.New("query failed")

	tests := []struct {
		name         string
		beginErr     error
		commitErr    error
		fnErr        error
		wantErr      error
		wantCommit   bool
		wantRollback bool
	}{
		{name: "commits on success", wantCommit: true},
		{name: "rolls back when fn fails", fnErr: errQuery, wantErr: errQuery, wantRollback: true},
		{name: "reports commit failure", commitErr: errQuery, wantErr: errQuery, wantCommit: true, wantRollback: true},
		{name: "begin failure skips fn", beginErr: errQuery, wantErr: errQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTx{commitErr: tt.commitErr}
			db := &fakeBeginner{tx: tx, beginErr: tt.beginErr}

			called := false
			err := WithTx(context.Background(), db, ReadSnapshot, func(got pgx.Tx) error {
				called = true
				assert.Same(t, tx, got)
				return tt.fnErr
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.beginErr == nil, called)
			assert.Equal(t, tt.wantCommit, tx.committed)
			assert.Equal(t, tt.wantRollback, tx.rolledBack)
			assert.Equal(t, ReadSnapshot, db.opts)
		})
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeBeginner{tx: tx}

	require.Panics(t, func() {
		_ = WithTx(context.Background(), db, pgx.TxOptions{}, func(pgx.Tx) error {
			panic("boom")
		})
	})
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestWithTransaction_UsesDefaultOptions(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}, opts: ReadSnapshot}

	require.NoError(t, WithTransaction(context.Background(), db, func(pgx.Tx) error { return nil }))
	assert.Equal(t, pgx.TxOptions{}, db.opts)
	assert.True(t, db.tx.committed)
}

func TestReadSnapshot(t *testing.T) {
	assert.Equal(t, pgx.ReadOnly, ReadSnapshot.AccessMode)
	assert.Equal(t, pgx.RepeatableRead, ReadSnapshot.IsoLevel)
}
