// Copyright 2026 Sokbolag AB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/sokbolag/branschmatch/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder and refiner instances.
type MockProvider struct {
	embedder *MockEmbedder
	refiner  *MockRefiner
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockRefiner() to access concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		refiner:  NewMockRefiner(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, refiner *MockRefiner) ai.Provider {
	return &MockProvider{
		embedder: embedder,
		refiner:  refiner,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Refiner returns the mock refiner.
func (p *MockProvider) Refiner() ai.Refiner {
	return p.refiner
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockRefiner returns the underlying mock refiner for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockRefiner() *MockRefiner {
	return p.refiner
}
