package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/storage"
)

// VectorCache is a BadgerDB-backed implementation of storage.VectorCache.
type VectorCache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a vector cache on top of an open backend.
func NewVectorCache(backend *Backend) (*VectorCache, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &VectorCache{
		backend: backend,
		logger:  slog.Default().With("component", "vector-cache"),
	}, nil
}

// Get retrieves the cached vector for a fingerprint and model.
func (c *VectorCache) Get(ctx context.Context, id core.ID, model string) ([]float32, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var vector []float32
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(model, id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err := storage.UnmarshalVectorRecord(val)
			if err != nil {
				return err
			}
			vector = record.Vector
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// Put stores a vector for a fingerprint and model.
func (c *VectorCache) Put(ctx context.Context, id core.ID, model string, vector []float32) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	record := &storage.VectorRecord{Model: model, Vector: vector}
	data := storage.MarshalVectorRecord(record)

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(model, id), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of cached vectors for the given model.
func (c *VectorCache) Count(ctx context.Context, model string) (int, error) {
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeModelPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying backend.
func (c *VectorCache) Close() error {
	return c.backend.Close()
}
