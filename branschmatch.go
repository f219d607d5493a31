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


package branschmatch

import (
	"context"
	"io"
	"log/slog"

	"github.com/sokbolag/branschmatch/ai"
	"github.com/sokbolag/branschmatch/ai/openai"
	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/match"
	"github.com/sokbolag/branschmatch/precompute"
	"github.com/sokbolag/branschmatch/storage"
	"github.com/sokbolag/branschmatch/storage/badger"
	"github.com/sokbolag/branschmatch/taxonomy"
)

// Service is the top-level entry point: a loaded taxonomy, an AI provider
// and a configured matcher behind a single facade.
type Service struct {
	entries  []*core.TaxonomyEntry
	provider ai.Provider
	cache    storage.VectorCache
	matcher  *match.Matcher
	config   *ai.Config
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	strategy   match.Strategy
	cachePath  string
	maxResults int
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider sets a pre-built AI provider, bypassing the default
// OpenAI-compatible one. The service takes ownership and closes it.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithStrategy selects the matching strategy. Default is embedding
// similarity.
func WithStrategy(strategy match.Strategy) ServiceOption {
	return func(o *serviceOptions) {
		o.strategy = strategy
	}
}

// WithVectorCachePath enables the persistent vector cache at the given
// directory. Without it, taxonomy vectors live only in process memory.
func WithVectorCachePath(path string) ServiceOption {
	return func(o *serviceOptions) {
		o.cachePath = path
	}
}

// WithMaxResults caps the number of codes a match returns.
func WithMaxResults(n int) ServiceOption {
	return func(o *serviceOptions) {
		o.maxResults = n
	}
}

// NewService loads the taxonomy dataset at taxonomyPath and wires up a
// matching service.
func NewService(taxonomyPath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		strategy: match.StrategyEmbedding,
	}
	for _, opt := range opts {
		opt(options)
	}

	entries, err := taxonomy.Load(taxonomyPath)
	if err != nil {
		return nil, err
	}
	return newService(entries, options)
}

// NewServiceFromEntries wires up a matching service over an already-loaded
// taxonomy. Entries must have passed taxonomy.Normalize.
func NewServiceFromEntries(entries []*core.TaxonomyEntry, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		strategy: match.StrategyEmbedding,
	}
	for _, opt := range opts {
		opt(options)
	}
	return newService(entries, options)
}

func newService(entries []*core.TaxonomyEntry, options *serviceOptions) (*Service, error) {
	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	var cache storage.VectorCache
	if options.cachePath != "" {
		backend, err := badger.OpenBackend(options.cachePath, false)
		if err != nil {
			provider.Close()
			return nil, err
		}
		cache, err = badger.NewVectorCache(backend)
		if err != nil {
			backend.Close()
			provider.Close()
			return nil, err
		}
	}

	matcherOpts := []match.Option{
		match.WithStrategy(options.strategy),
		match.WithEmbedder(provider.Embedder()),
		match.WithRefiner(provider.Refiner()),
		match.WithMinRelevance(options.aiConfig.MinRelevance),
	}
	if cache != nil {
		matcherOpts = append(matcherOpts, match.WithVectorCache(cache, options.aiConfig.EmbeddingModel))
	}
	if options.maxResults > 0 {
		matcherOpts = append(matcherOpts, match.WithMaxResults(options.maxResults))
	}

	matcher, err := match.New(entries, matcherOpts...)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		provider.Close()
		return nil, err
	}

	return &Service{
		entries:  entries,
		provider: provider,
		cache:    cache,
		matcher:  matcher,
		config:   options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

// MatchIndustries converts a free-text industry description into ranked
// taxonomy codes, best match first. The result is never nil and holds at
// most the configured maximum; an empty slice means nothing matched.
// Capability failures degrade to lexical matching and never surface here.
func (s *Service) MatchIndustries(ctx context.Context, query string) []string {
	return s.matcher.Match(ctx, query)
}

// Entries returns the loaded taxonomy.
func (s *Service) Entries() []*core.TaxonomyEntry {
	return s.entries
}

// NewPrecomputer creates a precomputer that warms this service's vector
// cache. The service must have been built with WithVectorCachePath.
func (s *Service) NewPrecomputer(config *precompute.Config, progress io.Writer) (*precompute.Precomputer, error) {
	return precompute.NewPrecomputer(s.entries, s.provider.Embedder(), s.cache,
		s.config.EmbeddingModel, config, progress)
}

// Close releases the AI provider and the vector cache.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing vector cache", "err", err)
			return err
		}
	}
	return nil
}
