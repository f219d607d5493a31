package match

import (
	"context"

	"github.com/sokbolag/branschmatch/ai"
	"github.com/sokbolag/branschmatch/core"
)

// refineCandidates re-ranks lexical candidates through the refiner. The
// refinement is skipped when the candidate set is small enough or the top
// score signals a near-exact lexical hit. Any refiner failure, malformed
// response or fully-invalid ranking falls back to the lexical order.
func (m *Matcher) refineCandidates(ctx context.Context, query string, candidates []core.Match, monitor MatchMonitor) []core.Match {
	if len(candidates) == 0 {
		return candidates
	}
	if len(candidates) <= refineSkipCandidates || candidates[0].Score >= refineSkipScore {
		m.logger.Debug("skipping refinement",
			"candidates", len(candidates), "top_score", candidates[0].Score)
		return candidates
	}

	prompt := make([]ai.Candidate, 0, len(candidates))
	for _, c := range candidates {
		name := ""
		if entry, ok := m.byCode[c.Code]; ok {
			name = entry.Name
		}
		prompt = append(prompt, ai.Candidate{Code: c.Code, Name: name, Score: c.Score})
	}

	ranked, err := m.refiner.RefineCandidates(ctx, query, prompt)
	if err != nil {
		m.logger.Warn("refinement failed, keeping lexical order", "error", err)
		monitor.Degraded("refinement", err)
		return candidates
	}

	matches := m.validateRanking(candidates, ranked)
	if len(matches) == 0 {
		m.logger.Warn("refinement returned no usable codes, keeping lexical order",
			"ranked", len(ranked))
		monitor.Degraded("refinement", errNoUsableRanking)
		return candidates
	}

	monitor.SemanticRanked(matches)
	return matches
}

// validateRanking keeps only ranked codes that belong to the candidate set
// and clear the relevance floor, preserving the refiner's order and dropping
// duplicates.
func (m *Matcher) validateRanking(candidates []core.Match, ranked []ai.RankedCode) []core.Match {
	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c.Code] = struct{}{}
	}

	matches := make([]core.Match, 0, len(ranked))
	seen := make(map[string]struct{}, len(ranked))
	for _, rc := range ranked {
		if _, ok := allowed[rc.Code]; !ok {
			m.logger.Debug("refiner returned code outside candidate set", "code", rc.Code)
			continue
		}
		if _, dup := seen[rc.Code]; dup {
			continue
		}
		if rc.Relevance < m.minRelevance {
			continue
		}
		seen[rc.Code] = struct{}{}
		matches = append(matches, core.Match{Code: rc.Code, Score: float32(rc.Relevance)})
	}
	return matches
}
