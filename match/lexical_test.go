package match

import (
	"testing"

	"github.com/sokbolag/branschmatch/core"
	"github.com/stretchr/testify/assert"
)

func testEntry(code, name, description string, keywords ...string) *core.TaxonomyEntry {
	return &core.TaxonomyEntry{
		Code:        code,
		Name:        name,
		Description: description,
		Keywords:    keywords,
	}
}

func TestLexicalScore_SubstringContainment(t *testing.T) {
	ie := indexEntry(testEntry("100", "Legal services", "Representation in legal matters", "legal", "law"))

	query := "legal services"
	score := lexicalScore(query, tokenize(query), ie)

	// Full containment plus complete token overlap plus the "legal" keyword.
	assert.Greater(t, score, substringWeight)
}

func TestLexicalScore_NoOverlap(t *testing.T) {
	ie := indexEntry(testEntry("100", "Mixed farming", "Crops and animals", "farming", "crops"))

	query := "software development"
	assert.Zero(t, lexicalScore(query, tokenize(query), ie))
}

func TestLexicalScore_ClampedAtMax(t *testing.T) {
	// An entry whose every signal fires stays at the cap.
	ie := indexEntry(testEntry("100",
		"software development software development",
		"software development software development",
		"software", "development", "software development", "develop",
		"soft", "dev software", "software dev", "developing"))

	query := "software development"
	score := lexicalScore(query, tokenize(query), ie)
	assert.Equal(t, maxLexicalScore, score)
}

func TestLexicalScore_Deterministic(t *testing.T) {
	ie := indexEntry(testEntry("100", "Freight transport by road", "Transport of goods by truck", "transport", "freight"))

	query := "road freight transport"
	tokens := tokenize(query)
	first := lexicalScore(query, tokens, ie)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, lexicalScore(query, tokens, ie))
	}
}

func TestLexicalScore_KeywordTokensCountTowardOverlap(t *testing.T) {
	ie := indexEntry(testEntry("100", "Restaurants", "", "food", "catering"))

	query := "food delivery"
	score := lexicalScore(query, tokenize(query), ie)

	// "food" is a keyword-derived token of the searchable text, so it earns
	// overlap credit (0.6 × 1/2) on top of the keyword bonus (0.15).
	assert.InDelta(t, 0.45, score, 1e-6)
}

func TestLexicalScore_KeywordHitsAreSubstringStrict(t *testing.T) {
	ie := indexEntry(testEntry("100", "Software development", "", "developer"))

	// "developer" is neither contained in the query nor contains it, so the
	// keyword bonus stays off; only token overlap fires (0.6 × 1/2).
	query := "develop apps"
	score := lexicalScore(query, tokenize(query), ie)

	assert.InDelta(t, 0.3, score, 1e-6)
}

func TestLexicalScore_IgnoresBlankKeywords(t *testing.T) {
	ie := indexEntry(testEntry("100", "Mixed farming", "Crops and animals", "", "  "))

	query := "software development"
	assert.Zero(t, lexicalScore(query, tokenize(query), ie))
}

func TestLexicalScore_PartialTokenOverlap(t *testing.T) {
	ie := indexEntry(testEntry("100", "Restaurants", "", "restaurant", "food"))

	// One of two query tokens fuzzily matches the name.
	query := "restaurant verksamhet"
	score := lexicalScore(query, tokenize(query), ie)

	assert.Greater(t, score, float32(0))
	assert.Less(t, score, substringWeight)
}
