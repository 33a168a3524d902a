package repository

import (
	"context"
	"fmt"

	"student-housing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, opts pgx.TxOptions, fn func(tx *Repository) error) error
}

// SnapshotTx is a read-only view where every query sees the same point in time.
var SnapshotTx = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, opts pgx.TxOptions, fn func(tx *Repository) error) (err error) {
	tx, err := t.db.BeginTx(ctx, opts)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txRepo := newRepository(tx, t.log)
	txRepo.Tx = nestedTransactor{repo: txRepo}

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			t.log.Error("Failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// nestedTransactor joins the enclosing transaction.
type nestedTransactor struct {
	repo *Repository
}

func (n nestedTransactor) WithinTx(_ context.Context, _ pgx.TxOptions, fn func(tx *Repository) error) error {
	return fn(n.repo)
}
