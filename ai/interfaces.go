package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity ranking.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Refiner re-ranks a candidate list of taxonomy codes by true relevance to a
// query, using generative-model judgment. Implementations must be thread-safe
// for concurrent use.
type Refiner interface {
	// RefineCandidates selects and ranks a subset of the given candidates.
	// Returned codes are expected to be drawn from the candidate list; callers
	// must still validate this, since generative models can hallucinate.
	// Returns an empty slice if the model judges no candidate relevant.
	// Returns an error if the refinement call fails.
	RefineCandidates(ctx context.Context, query string, candidates []Candidate) ([]RankedCode, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Refiner instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Refiner returns the candidate refinement service.
	// The returned Refiner is safe for concurrent use.
	Refiner() Refiner

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
