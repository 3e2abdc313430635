// Package storage implements the LedgerStore persistence collaborator using
// BadgerHold. All rows are keyed by composite user-scoped keys; bulk inserts
// run inside a single Badger write transaction so a batch lands entirely or
// not at all.
package storage

import (
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.LedgerStore = (*Store)(nil)

// Store implements interfaces.LedgerStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// keySep is the composite key separator. Using a null byte prevents
// collisions when a user id or row id contains ":" characters.
const keySep = "\x00"

// compositeKey builds the storage key: user_id + \x00 + row id.
func compositeKey(userID, id string) string {
	return userID + keySep + id
}

// NewStore creates a new LedgerStore backed by BadgerHold at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Ledger store opened")
	return &Store{db: db, logger: logger}, nil
}

// DB returns the underlying badgerhold store for test use.
func (s *Store) DB() *badgerhold.Store {
	return s.db
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
