package precompute

import (
	"context"
	"fmt"
	"time"

	"github.com/sokbolag/branschmatch/ai"
	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/match"
	"github.com/sokbolag/branschmatch/storage"
)

// batchProcessor embeds batches of taxonomy entries and writes the vectors
// to the cache.
type batchProcessor struct {
	embedder       ai.Embedder
	cache          storage.VectorCache
	model          string
	maxRetries     int
	retryBaseDelay time.Duration
}

func newBatchProcessor(embedder ai.Embedder, cache storage.VectorCache, model string, maxRetries int, retryBaseDelay time.Duration) *batchProcessor {
	return &batchProcessor{
		embedder:       embedder,
		cache:          cache,
		model:          model,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// process generates embeddings for a batch of entries and stores them.
// Vectors are normalized before storage so similarity ranking can use plain
// dot products.
func (bp *batchProcessor) process(ctx context.Context, entries []*core.TaxonomyEntry) error {
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.SearchText()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(entries) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(entries), len(embeddings))
	}

	for i, entry := range entries {
		vector := embeddings[i]
		match.NormalizeVector(vector)
		if err := bp.cache.Put(ctx, entry.Fingerprint(), bp.model, vector); err != nil {
			return fmt.Errorf("failed to cache vector for %s: %w", entry.Code, err)
		}
	}

	return nil
}
