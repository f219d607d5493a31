package mock

import (
	"context"
	"hash/fnv"
)

// mockVectorDim matches the output width of the small embedding models the
// matcher is normally pointed at.
const mockVectorDim = 384

// MockEmbedder is a configurable ai.Embedder double. By default it derives a
// stable pseudo-random vector from the input, so a taxonomy search text
// embeds to the same vector on every call without a model behind it. Tests
// override the function fields to inject hand-picked vectors or failures.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with the deterministic default
// behavior. The concrete type is returned so tests can assert on CallCount.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText embeds a single query string.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return textVector(text), nil
}

// EmbedTexts embeds a batch of search texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = textVector(text)
	}
	return vectors, nil
}

// CallCount returns how many embedding calls were made, overrides included.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// textVector derives a stable vector from text: an FNV-1a hash seeds a linear
// congruential generator, so equal texts always embed identically and
// different texts almost never do. The matcher normalizes vectors itself, so
// no unit-length guarantee is needed here.
func textVector(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	state := h.Sum32()

	vector := make([]float32, mockVectorDim)
	for i := range vector {
		state = state*1664525 + 1013904223
		vector[i] = float32(state%1000) / 1000.0
	}
	return vector
}
