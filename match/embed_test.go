package match

import (
	"context"
	"errors"
	"testing"

	"github.com/sokbolag/branschmatch/ai/mock"
	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedVectorEmbedder maps search texts to hand-picked unit vectors so
// similarity ordering is fully controlled by the test.
func fixedVectorEmbedder(byText map[string][]float32, query []float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return append([]float32(nil), query...), nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			v, ok := byText[text]
			if !ok {
				return nil, errors.New("unexpected text: " + text)
			}
			vectors[i] = append([]float32(nil), v...)
		}
		return vectors, nil
	}
	return embedder
}

func embeddingTaxonomy() []*core.TaxonomyEntry {
	return []*core.TaxonomyEntry{
		testEntry("4001", "Software development", "Custom software"),
		testEntry("4002", "Restaurants", "Meals and catering"),
		testEntry("4003", "IT consulting", "Technology advice"),
	}
}

func embeddingVectors(entries []*core.TaxonomyEntry) map[string][]float32 {
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.8, 0.6, 0},
	}
	byText := make(map[string][]float32, len(entries))
	for i, entry := range entries {
		byText[entry.SearchText()] = vectors[i]
	}
	return byText
}

func TestEmbedding_RanksBySimilarity(t *testing.T) {
	entries := embeddingTaxonomy()
	embedder := fixedVectorEmbedder(embeddingVectors(entries), []float32{1, 0, 0})

	m, err := New(entries, WithEmbedder(embedder), WithLogger(quietLogger()))
	require.NoError(t, err)

	codes := m.Match(context.Background(), "software development")

	// Query vector aligns with 4001 (similarity 1.0), partially with 4003
	// (0.8); 4002 is orthogonal and falls below the floor.
	assert.Equal(t, []string{"4001", "4003"}, codes)
}

func TestEmbedding_SimilarityFloorFiltersWeakMatches(t *testing.T) {
	entries := embeddingTaxonomy()
	embedder := fixedVectorEmbedder(embeddingVectors(entries), []float32{0, 1, 0})

	m, err := New(entries,
		WithEmbedder(embedder),
		WithMinSimilarity(0.7),
		WithLogger(quietLogger()))
	require.NoError(t, err)

	codes := m.Match(context.Background(), "restaurant")

	// Only the orthogonal base entry clears a 0.7 floor; 4003 sits at 0.6.
	assert.Equal(t, []string{"4002"}, codes)
}

func TestEmbedding_IndexBuiltOnce(t *testing.T) {
	entries := embeddingTaxonomy()

	batchCalls := 0
	embedder := fixedVectorEmbedder(embeddingVectors(entries), []float32{1, 0, 0})
	inner := embedder.EmbedTextsFunc
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		batchCalls++
		return inner(ctx, texts)
	}

	m, err := New(entries, WithEmbedder(embedder), WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx := context.Background()
	m.Match(ctx, "software development")
	m.Match(ctx, "programming")
	m.Match(ctx, "saas platform")

	assert.Equal(t, 1, batchCalls, "taxonomy is embedded once per process")
}

func TestEmbedding_FailedIndexBuildRetries(t *testing.T) {
	entries := embeddingTaxonomy()

	attempts := 0
	embedder := fixedVectorEmbedder(embeddingVectors(entries), []float32{1, 0, 0})
	inner := embedder.EmbedTextsFunc
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("service warming up")
		}
		return inner(ctx, texts)
	}

	m, err := New(entries, WithEmbedder(embedder), WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx := context.Background()
	first := m.Match(ctx, "software development")
	second := m.Match(ctx, "software development")

	// First call degrades, second call rebuilds the index and ranks
	// semantically.
	assert.NotNil(t, first)
	assert.Equal(t, []string{"4001", "4003"}, second)
	assert.Equal(t, 2, attempts)
}

func TestEmbedding_VectorCacheAvoidsReembedding(t *testing.T) {
	entries := embeddingTaxonomy()
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	// First matcher populates the cache.
	embedder := fixedVectorEmbedder(embeddingVectors(entries), []float32{1, 0, 0})
	m1, err := New(entries,
		WithEmbedder(embedder),
		WithVectorCache(cache, "embeddinggemma"),
		WithLogger(quietLogger()))
	require.NoError(t, err)

	want := m1.Match(ctx, "software development")
	require.NotEmpty(t, want)

	count, err := cache.Count(ctx, "embeddinggemma")
	require.NoError(t, err)
	assert.Equal(t, len(entries), count)

	// Second matcher must not need batch embedding at all.
	cold := mock.NewMockEmbedder()
	cold.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("batch embedding should not be called")
	}
	cold.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	m2, err := New(entries,
		WithEmbedder(cold),
		WithVectorCache(cache, "embeddinggemma"),
		WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, want, m2.Match(ctx, "software development"))
}

func TestNormalizeVector(t *testing.T) {
	v := []float32{3, 4}
	NormalizeVector(v)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	zero := []float32{0, 0}
	NormalizeVector(zero)
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestDotProduct(t *testing.T) {
	assert.InDelta(t, 1.0, dotProduct([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, dotProduct([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, dotProduct([]float32{1, 0}, []float32{-1, 0}), 1e-6)
}
