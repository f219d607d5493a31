package storage

import (
	"context"

	"github.com/sokbolag/branschmatch/core"
)

// VectorCache persists computed embeddings between process runs so the
// taxonomy does not have to be re-embedded at every startup.
// Implementations must be thread-safe and support concurrent access.
//
// Entries are keyed by the taxonomy entry's content fingerprint together
// with the embedding model name: editing the dataset or switching models
// leaves stale entries behind rather than serving them.
type VectorCache interface {
	// Get retrieves the cached vector for a fingerprint and model.
	// Returns ErrNotFound if no vector is cached.
	Get(ctx context.Context, id core.ID, model string) ([]float32, error)

	// Put stores a vector for a fingerprint and model.
	// Overwrites any existing entry; vectors are pure functions of their
	// source text, so duplicate writes are idempotent.
	Put(ctx context.Context, id core.ID, model string, vector []float32) error

	// Count returns the number of cached vectors for the given model.
	Count(ctx context.Context, model string) (int, error)

	// Close closes the cache backend and releases resources.
	Close() error
}
