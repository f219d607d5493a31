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


package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/sokbolag/branschmatch/ai"
	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/storage"
)

// Strategy selects how lexical candidates are re-ranked.
type Strategy int

const (
	// StrategyLexical ranks by heuristic score only. No capabilities needed.
	StrategyLexical Strategy = iota

	// StrategyEmbedding re-ranks the full taxonomy by embedding similarity
	// against the query. Default.
	StrategyEmbedding

	// StrategyRefine sends the lexical candidates to an LLM for relevance
	// re-ranking.
	StrategyRefine
)

// Defaults for the ranking pipeline.
const (
	DefaultMaxResults    = 8
	DefaultMaxCandidates = 12

	// DefaultMinScore is the candidate cutoff when a semantic stage follows
	// and can rescue weak lexical matches.
	DefaultMinScore float32 = 0.15

	// DefaultLexicalMinScore is the stricter cutoff applied when heuristic
	// scores are the final ranking.
	DefaultLexicalMinScore float32 = 0.35

	// DefaultMinSimilarity is the cosine similarity floor for embedding
	// matches.
	DefaultMinSimilarity float32 = 0.3

	// DefaultMinRelevance is the floor for refiner-assigned relevance.
	DefaultMinRelevance = 0.4
)

// Refinement is skipped when the candidate set is already small or the top
// lexical score signals a near-exact hit.
const (
	refineSkipCandidates         = 3
	refineSkipScore      float32 = 1.5
)

// Matcher converts free-text industry descriptions into ranked taxonomy
// codes. It is safe for concurrent use; the embedding index is built lazily
// on first use and shared between calls.
type Matcher struct {
	index    []indexedEntry
	byCode   map[string]*core.TaxonomyEntry
	strategy Strategy

	embedder ai.Embedder
	refiner  ai.Refiner
	cache    storage.VectorCache
	model    string

	maxResults      int
	maxCandidates   int
	minScore        float32
	lexicalMinScore float32
	minSimilarity   float32
	minRelevance    float64

	logger *slog.Logger

	vecMu    sync.Mutex
	vecReady bool
	vectors  [][]float32
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithStrategy selects the ranking strategy.
func WithStrategy(strategy Strategy) Option {
	return func(m *Matcher) error {
		switch strategy {
		case StrategyLexical, StrategyEmbedding, StrategyRefine:
			m.strategy = strategy
			return nil
		default:
			return fmt.Errorf("%w: %d", ErrUnknownStrategy, strategy)
		}
	}
}

// WithEmbedder sets the embedder used by the embedding strategy.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(m *Matcher) error {
		m.embedder = embedder
		return nil
	}
}

// WithRefiner sets the refiner used by the refinement strategy.
func WithRefiner(refiner ai.Refiner) Option {
	return func(m *Matcher) error {
		m.refiner = refiner
		return nil
	}
}

// WithVectorCache attaches a persistent vector cache keyed by entry
// fingerprint and model name. Entries found in the cache are not re-embedded.
func WithVectorCache(cache storage.VectorCache, model string) Option {
	return func(m *Matcher) error {
		if model == "" {
			return fmt.Errorf("vector cache requires a model name")
		}
		m.cache = cache
		m.model = model
		return nil
	}
}

// WithMaxResults caps the number of codes a match returns.
func WithMaxResults(n int) Option {
	return func(m *Matcher) error {
		if n <= 0 {
			return fmt.Errorf("max results must be positive, got %d", n)
		}
		m.maxResults = n
		return nil
	}
}

// WithMinScore sets the lexical score floor for candidate selection when a
// semantic stage follows.
func WithMinScore(threshold float32) Option {
	return func(m *Matcher) error {
		if threshold < 0 {
			return fmt.Errorf("score threshold must be non-negative, got %f", threshold)
		}
		m.minScore = threshold
		return nil
	}
}

// WithLexicalMinScore sets the stricter score floor applied when heuristic
// scores are the final ranking.
func WithLexicalMinScore(threshold float32) Option {
	return func(m *Matcher) error {
		if threshold < 0 {
			return fmt.Errorf("score threshold must be non-negative, got %f", threshold)
		}
		m.lexicalMinScore = threshold
		return nil
	}
}

// WithMinSimilarity sets the cosine similarity floor for embedding matches.
func WithMinSimilarity(threshold float32) Option {
	return func(m *Matcher) error {
		if threshold < -1 || threshold > 1 {
			return fmt.Errorf("similarity threshold must be in [-1, 1], got %f", threshold)
		}
		m.minSimilarity = threshold
		return nil
	}
}

// WithMinRelevance sets the floor for refiner-assigned relevance scores.
func WithMinRelevance(threshold float64) Option {
	return func(m *Matcher) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("relevance threshold must be in [0, 1], got %f", threshold)
		}
		m.minRelevance = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// New creates a Matcher over the given taxonomy entries.
func New(entries []*core.TaxonomyEntry, opts ...Option) (*Matcher, error) {
	if len(entries) == 0 {
		return nil, ErrTaxonomyRequired
	}

	m := &Matcher{
		strategy:        StrategyEmbedding,
		maxResults:      DefaultMaxResults,
		maxCandidates:   DefaultMaxCandidates,
		minScore:        DefaultMinScore,
		lexicalMinScore: DefaultLexicalMinScore,
		minSimilarity:   DefaultMinSimilarity,
		minRelevance:    DefaultMinRelevance,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid matcher option: %w", err)
		}
	}

	switch m.strategy {
	case StrategyEmbedding:
		if m.embedder == nil {
			return nil, ErrEmbedderRequired
		}
	case StrategyRefine:
		if m.refiner == nil {
			return nil, ErrRefinerRequired
		}
	}

	m.index = make([]indexedEntry, 0, len(entries))
	m.byCode = make(map[string]*core.TaxonomyEntry, len(entries))
	for _, entry := range entries {
		m.index = append(m.index, indexEntry(entry))
		m.byCode[entry.Code] = entry
	}
	m.logger = m.logger.With("component", "matcher")

	return m, nil
}

// Match returns taxonomy codes ranked best-first for the given free-text
// industry description. The result is never nil; an empty slice means no
// entry was judged relevant. Capability failures degrade to lexical ranking
// and are never surfaced to the caller.
func (m *Matcher) Match(ctx context.Context, query string) []string {
	return m.MatchWithMonitor(ctx, query, &noopMonitor{})
}

// MatchWithMonitor is Match with per-stage callbacks for tracing and tests.
func (m *Matcher) MatchWithMonitor(ctx context.Context, query string, monitor MatchMonitor) []string {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		monitor.Finish([]string{})
		return []string{}
	}
	queryTokens := tokenize(normalized)

	var matches []core.Match
	switch m.strategy {
	case StrategyEmbedding:
		candidates := m.selectCandidates(normalized, queryTokens, m.minScore)
		monitor.LexicalScored(candidates)
		ranked, err := m.rankBySimilarity(ctx, normalized)
		if err != nil {
			m.logger.Warn("embedding ranking failed, falling back to lexical scores",
				"error", err)
			monitor.Degraded("embedding", err)
			matches = m.strictLexical(candidates)
		} else {
			monitor.SemanticRanked(ranked)
			matches = ranked
		}
	case StrategyRefine:
		candidates := m.selectCandidates(normalized, queryTokens, m.minScore)
		monitor.LexicalScored(candidates)
		matches = m.refineCandidates(ctx, query, candidates, monitor)
	default:
		matches = m.selectCandidates(normalized, queryTokens, m.lexicalMinScore)
		monitor.LexicalScored(matches)
	}

	codes := collectCodes(matches, m.maxResults)
	monitor.Finish(codes)
	return codes
}

// selectCandidates scores every entry lexically and returns those at or above
// the threshold, ordered by descending score. Ties keep taxonomy order. The
// result is capped at maxCandidates.
func (m *Matcher) selectCandidates(query string, queryTokens []string, threshold float32) []core.Match {
	candidates := make([]core.Match, 0, m.maxCandidates)
	for _, ie := range m.index {
		score := lexicalScore(query, queryTokens, ie)
		if score >= threshold {
			candidates = append(candidates, core.Match{Code: ie.entry.Code, Score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > m.maxCandidates {
		candidates = candidates[:m.maxCandidates]
	}
	return candidates
}

// strictLexical re-applies the heuristics-only threshold to candidates that
// were selected with the looser rescue cutoff.
func (m *Matcher) strictLexical(candidates []core.Match) []core.Match {
	matches := make([]core.Match, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= m.lexicalMinScore {
			matches = append(matches, c)
		}
	}
	return matches
}

// collectCodes extracts at most limit unique codes in order.
func collectCodes(matches []core.Match, limit int) []string {
	codes := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, match := range matches {
		if _, dup := seen[match.Code]; dup {
			continue
		}
		seen[match.Code] = struct{}{}
		codes = append(codes, match.Code)
		if len(codes) == limit {
			break
		}
	}
	return codes
}
