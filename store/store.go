// Package store persists registered entities in SQLite. It drives every
// statement off the model registry: table names, key columns, and per-field
// storage types all come from the entity schemas, so adding an entity kind
// never means adding SQL here.
package store

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/tipline/tipline/errors"
)

// Store wraps the database handle. All reads and writes go through Transact
// so that multi-entity operations, cascaded deletes in particular, are
// atomic.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// New creates a store over an already migrated database.
// If logger is nil the store operates silently.
func New(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, log: logger}
}

// DB exposes the underlying handle for maintenance commands.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Tx is one transaction against the store.
type Tx struct {
	tx  *sql.Tx
	log *zap.SugaredLogger
}

// Transact runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (s *Store) Transact(fn func(*Tx) error) (err error) {
	sqlTx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			sqlTx.Rollback()
			return
		}
		err = errors.Wrap(sqlTx.Commit(), "commit transaction")
	}()

	return fn(&Tx{tx: sqlTx, log: s.log})
}
