//go:generate go run go.uber.org/mock/mockgen -source=adapter.go -destination=../mocks/mock_adapter.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strikeup/errors"

	"github.com/dgraph-io/badger/v4"
)

// Adapter is the durable key-value boundary of the entity store.
// Load returns errors.ErrKeyNotFound when nothing is stored under key.
type Adapter interface {
	Load(key string) ([]byte, error)
	Save(key string, blob []byte) error
	SaveAll(blobs map[string][]byte) error
	Delete(key string) error
}

type BadgerAdapter struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerAdapter(db *badger.DB, log *slog.Logger) *BadgerAdapter {
	return &BadgerAdapter{db: db, log: log}
}

// OpenBadger opens the database backing the adapter.
// An in-memory database ignores path and is lost on Close.
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	options := badger.DefaultOptions(path)
	if inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	}
	db, err := badger.Open(options.WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	return db, nil
}

func (b *BadgerAdapter) Load(key string) ([]byte, error) {
	var blob []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case stderrors.Is(err, badger.ErrKeyNotFound):
		return nil, fmt.Errorf("%w: %s", errors.ErrKeyNotFound, key)
	case err != nil:
		return nil, fmt.Errorf("%w: load %s: %w", errors.ErrPersistence, key, err)
	}
	return blob, nil
}

func (b *BadgerAdapter) Save(key string, blob []byte) error {
	return b.SaveAll(map[string][]byte{key: blob})
}

// SaveAll writes every blob in a single transaction, so either all keys
// are updated or none is.
func (b *BadgerAdapter) SaveAll(blobs map[string][]byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		for key, blob := range blobs {
			if err := txn.Set([]byte(key), blob); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		b.log.Error("Snapshot write failed", "keys", len(blobs), "error", err)
		return fmt.Errorf("%w: %w", errors.ErrWriteFailed, err)
	}
	return nil
}

func (b *BadgerAdapter) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		b.log.Error("Key deletion failed", "key", key, "error", err)
		return fmt.Errorf("%w: %w", errors.ErrWriteFailed, err)
	}
	return nil
}
