package mock

import (
	"context"

	"github.com/sokbolag/branschmatch/ai"
)

// MockRefiner is a test double for ai.Refiner.
// It allows custom behavior injection via function fields.
type MockRefiner struct {
	// RefineCandidatesFunc is called by RefineCandidates if set.
	// If nil, uses default pass-through behavior.
	RefineCandidatesFunc func(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedCode, error)

	callCount int
}

// NewMockRefiner creates a mock refiner with default pass-through behavior.
// Note: Returns concrete type to allow test assertions via GetMockRefiner().
func NewMockRefiner() *MockRefiner {
	return &MockRefiner{}
}

// RefineCandidates returns the candidates in their given order.
// Default behavior: every candidate is kept, relevance derived from its
// position so ordering is preserved.
func (m *MockRefiner) RefineCandidates(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedCode, error) {
	m.callCount++

	if m.RefineCandidatesFunc != nil {
		return m.RefineCandidatesFunc(ctx, query, candidates)
	}

	ranked := make([]ai.RankedCode, len(candidates))
	for i, c := range candidates {
		ranked[i] = ai.RankedCode{
			Code:      c.Code,
			Relevance: 1.0 - float64(i)*(1.0/float64(len(candidates)+1)),
		}
	}
	return ranked, nil
}

// CallCount returns the number of times RefineCandidates was called.
func (m *MockRefiner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockRefiner) Reset() {
	m.callCount = 0
	m.RefineCandidatesFunc = nil
}
