package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*StatusRepo
	*UserRepo
	*GroupRepo
	*TaskRepo
	*DescriptionRepo
	*CommentRepo

	db      *sql.DB // nil when the repository is bound to a transaction
	dialect Dialect
}

// NewRepository creates a new Repository wrapping the given database connection.
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return newRepository(db, db, dialect)
}

func newRepository(db *sql.DB, q DBTX, dialect Dialect) *Repository {
	c := conn{db: q, dialect: dialect}
	return &Repository{
		ProjectRepo:     &ProjectRepo{c},
		StatusRepo:      &StatusRepo{c},
		UserRepo:        &UserRepo{c},
		GroupRepo:       &GroupRepo{c},
		TaskRepo:        &TaskRepo{c},
		DescriptionRepo: &DescriptionRepo{c},
		CommentRepo:     &CommentRepo{c},
		db:              db,
		dialect:         dialect,
	}
}

// ErrNestedTx is returned by BeginTx on a repository already bound to a transaction.
var ErrNestedTx = errors.New("repository is already inside a transaction")

// BeginTx starts a transaction on the underlying connection.
func (r *Repository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	if r.db == nil {
		return nil, ErrNestedTx
	}
	return r.db.BeginTx(ctx, nil)
}

// WithTx returns a repository whose operations all run inside tx.
func (r *Repository) WithTx(tx *sql.Tx) DataStore {
	return newRepository(nil, tx, r.dialect)
}

// Dialect reports the SQL flavour of the backing store.
func (r *Repository) Dialect() Dialect {
	return r.dialect
}

// WithTx executes fn within a database transaction.
// It handles begin, rollback on error, and commit on success. Every store
// call inside fn must go through the store it is handed.
func WithTx(ctx context.Context, store DataStore, fn func(tx DataStore) error) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(store.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
