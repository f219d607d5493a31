package match

import (
	"strings"

	"github.com/sokbolag/branschmatch/core"
)

// Scoring weights for the lexical stage. The weights are additive and the
// total is clamped to maxLexicalScore so that no single entry can dominate
// purely on keyword volume.
const (
	substringWeight    float32 = 1.0
	tokenOverlapWeight float32 = 0.6
	keywordHitWeight   float32 = 0.15
	descriptionWeight  float32 = 0.25
	maxLexicalScore    float32 = 2.0
)

// indexedEntry is a taxonomy entry with its search text pre-tokenized.
// Tokenizing once at construction keeps scoring allocation-free per query.
type indexedEntry struct {
	entry        *core.TaxonomyEntry
	searchText   string
	searchTokens []string
	descTokens   []string
	keywords     []string
}

func indexEntry(entry *core.TaxonomyEntry) indexedEntry {
	keywords := make([]string, 0, len(entry.Keywords))
	for _, kw := range entry.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}
	searchText := entry.SearchText()
	return indexedEntry{
		entry:        entry,
		searchText:   searchText,
		searchTokens: tokenize(searchText),
		descTokens:   tokenize(entry.Description),
		keywords:     keywords,
	}
}

// lexicalScore computes the heuristic relevance of one taxonomy entry for a
// normalized query. It is a pure function of its inputs: same query, same
// entry, same score.
func lexicalScore(query string, queryTokens []string, ie indexedEntry) float32 {
	var score float32

	// Full-query containment is the strongest lexical signal.
	if strings.Contains(ie.searchText, query) {
		score += substringWeight
	}

	// Fuzzy token overlap against the full searchable text, scaled by
	// query coverage.
	if len(queryTokens) > 0 {
		matched := 0
		for _, token := range queryTokens {
			if anyFuzzyMatch(token, ie.searchTokens) {
				matched++
			}
		}
		score += tokenOverlapWeight * float32(matched) / float32(len(queryTokens))
	}

	// Flat bonus per curated keyword contained in the query, or containing
	// the whole query.
	for _, kw := range ie.keywords {
		if strings.Contains(query, kw) || strings.Contains(kw, query) {
			score += keywordHitWeight
		}
	}

	// Weaker overlap signal from the long-form description.
	if len(queryTokens) > 0 && len(ie.descTokens) > 0 {
		matched := 0
		for _, token := range queryTokens {
			if anyFuzzyMatch(token, ie.descTokens) {
				matched++
			}
		}
		score += descriptionWeight * float32(matched) / float32(len(queryTokens))
	}

	if score > maxLexicalScore {
		score = maxLexicalScore
	}
	return score
}
