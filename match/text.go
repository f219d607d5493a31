package match

import "strings"

// minTokenLength is the shortest token that participates in overlap scoring.
// Shorter tokens (articles, conjunctions, Swedish "AB") carry no signal.
const minTokenLength = 2

// tokenize splits text into lower-cased whitespace-separated tokens longer
// than minTokenLength characters.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) > minTokenLength {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// fuzzyTokenMatch reports whether two tokens match loosely: one contains the
// other, or they share a common prefix of at least 3 characters. The prefix
// rule catches inflected forms ("developer"/"development").
func fuzzyTokenMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if len(a) >= 3 && len(b) >= 3 && a[:3] == b[:3] {
		return true
	}
	return false
}

// anyFuzzyMatch reports whether token fuzzily matches any of the given tokens.
func anyFuzzyMatch(token string, tokens []string) bool {
	for _, t := range tokens {
		if fuzzyTokenMatch(token, t) {
			return true
		}
	}
	return false
}
