package match

import "github.com/sokbolag/branschmatch/core"

// MatchMonitor receives callbacks at each stage of a match operation.
// Implementations can use it for tracing, debug output or test assertions.
// All methods are called from the goroutine running the match.
type MatchMonitor interface {
	// Start is called once with the raw query before any scoring.
	Start(query string)

	// LexicalScored is called with the candidates that survived the
	// lexical threshold, ordered best-first.
	LexicalScored(candidates []core.Match)

	// SemanticRanked is called with the semantically re-ranked matches.
	// It is not called when the matcher runs heuristics-only or degrades.
	SemanticRanked(matches []core.Match)

	// Degraded is called when a capability failed and the matcher fell
	// back to lexical ranking. stage is "embedding" or "refinement".
	Degraded(stage string, err error)

	// Finish is called once with the final code list.
	Finish(codes []string)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) LexicalScored(_ []core.Match) {}
func (n *noopMonitor) SemanticRanked(_ []core.Match) {}
func (n *noopMonitor) Degraded(_ string, _ error)   {}
func (n *noopMonitor) Finish(_ []string)            {}
