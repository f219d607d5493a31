package branschmatch

import (
	"bytes"
	"context"
	"testing"

	"github.com/sokbolag/branschmatch/ai/mock"
	"github.com/sokbolag/branschmatch/match"
	"github.com/sokbolag/branschmatch/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTaxonomyPath = "taxonomy/testdata/branscher.json"

func TestNewService_LoadsTaxonomy(t *testing.T) {
	svc, err := NewService(testTaxonomyPath,
		WithProvider(mock.NewMockProvider()),
		WithStrategy(match.StrategyLexical))
	require.NoError(t, err)
	defer svc.Close()

	assert.NotEmpty(t, svc.Entries())
}

func TestNewService_MissingDataset(t *testing.T) {
	_, err := NewService("does/not/exist.json",
		WithProvider(mock.NewMockProvider()))
	assert.ErrorIs(t, err, taxonomy.ErrDatasetUnavailable)
}

func TestService_MatchIndustries(t *testing.T) {
	svc, err := NewService(testTaxonomyPath,
		WithProvider(mock.NewMockProvider()),
		WithStrategy(match.StrategyLexical))
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()

	codes := svc.MatchIndustries(ctx, "software development / saas")
	require.NotEmpty(t, codes)
	assert.Equal(t, "10002115", codes[0])

	codes = svc.MatchIndustries(ctx, "")
	assert.NotNil(t, codes)
	assert.Empty(t, codes)
}

func TestService_MatchIndustriesEmbeddingStrategy(t *testing.T) {
	// Default strategy with the mock provider's deterministic embeddings:
	// results must be a valid (possibly empty) code list, never an error.
	svc, err := NewService(testTaxonomyPath,
		WithProvider(mock.NewMockProvider()),
		WithMaxResults(5))
	require.NoError(t, err)
	defer svc.Close()

	known := make(map[string]bool)
	for _, entry := range svc.Entries() {
		known[entry.Code] = true
	}

	codes := svc.MatchIndustries(context.Background(), "legal services")
	assert.NotNil(t, codes)
	assert.LessOrEqual(t, len(codes), 5)
	for _, code := range codes {
		assert.True(t, known[code])
	}
}

func TestService_VectorCacheAndPrecompute(t *testing.T) {
	dir := t.TempDir()

	svc, err := NewService(testTaxonomyPath,
		WithProvider(mock.NewMockProvider()),
		WithVectorCachePath(dir))
	require.NoError(t, err)
	defer svc.Close()

	var buf bytes.Buffer
	p, err := svc.NewPrecomputer(nil, &buf)
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Run(context.Background()))
	assert.Contains(t, buf.String(), "Precompute complete")

	// A warmed cache still serves matches.
	codes := svc.MatchIndustries(context.Background(), "restaurant")
	assert.NotNil(t, codes)
}

func TestService_PrecomputerRequiresCache(t *testing.T) {
	svc, err := NewService(testTaxonomyPath,
		WithProvider(mock.NewMockProvider()),
		WithStrategy(match.StrategyLexical))
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.NewPrecomputer(nil, nil)
	assert.Error(t, err)
}
