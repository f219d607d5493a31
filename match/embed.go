package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/storage"
)

// rankBySimilarity embeds the query and ranks the whole taxonomy by cosine
// similarity, keeping entries above the similarity floor.
func (m *Matcher) rankBySimilarity(ctx context.Context, query string) ([]core.Match, error) {
	if err := m.ensureVectors(ctx); err != nil {
		return nil, fmt.Errorf("building embedding index: %w", err)
	}

	queryVector, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	NormalizeVector(queryVector)

	matches := make([]core.Match, 0, m.maxResults)
	for i, ie := range m.index {
		vector := m.vectors[i]
		if len(vector) != len(queryVector) {
			continue
		}
		similarity := dotProduct(queryVector, vector)
		if similarity > m.minSimilarity {
			matches = append(matches, core.Match{Code: ie.entry.Code, Score: similarity})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > m.maxResults {
		matches = matches[:m.maxResults]
	}
	return matches, nil
}

// ensureVectors builds the embedding index exactly once per matcher. Cached
// vectors are reused; only entries missing from the cache hit the embedder,
// in a single batch. On failure the index stays unbuilt and the next call
// retries.
func (m *Matcher) ensureVectors(ctx context.Context) error {
	m.vecMu.Lock()
	defer m.vecMu.Unlock()

	if m.vecReady {
		return nil
	}

	vectors := make([][]float32, len(m.index))
	missing := make([]int, 0, len(m.index))

	for i, ie := range m.index {
		// Datasets can ship with precomputed vectors.
		if len(ie.entry.Vector) > 0 {
			vector := append([]float32(nil), ie.entry.Vector...)
			NormalizeVector(vector)
			vectors[i] = vector
			continue
		}

		if m.cache != nil {
			vector, err := m.cache.Get(ctx, ie.entry.Fingerprint(), m.model)
			if err == nil {
				vectors[i] = vector
				continue
			}
			if !errors.Is(err, storage.ErrNotFound) {
				m.logger.Warn("vector cache read failed",
					"code", ie.entry.Code, "error", err)
			}
		}

		missing = append(missing, i)
	}

	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for j, i := range missing {
			texts[j] = m.index[i].searchText
		}

		embedded, err := m.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding %d taxonomy entries: %w", len(missing), err)
		}
		if len(embedded) != len(missing) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(missing))
		}

		for j, i := range missing {
			vector := embedded[j]
			NormalizeVector(vector)
			vectors[i] = vector
			if m.cache != nil {
				if err := m.cache.Put(ctx, m.index[i].entry.Fingerprint(), m.model, vector); err != nil {
					m.logger.Warn("vector cache write failed",
						"code", m.index[i].entry.Code, "error", err)
				}
			}
		}
	}

	m.vectors = vectors
	m.vecReady = true
	m.logger.Debug("embedding index built",
		"entries", len(m.index), "embedded", len(missing))
	return nil
}

// NormalizeVector scales a vector to unit length in place. Zero vectors are
// left unchanged.
func NormalizeVector(vector []float32) {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vector {
		vector[i] /= norm
	}
}

// dotProduct computes the dot product of two equal-length vectors. With unit
// vectors this equals cosine similarity.
func dotProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
