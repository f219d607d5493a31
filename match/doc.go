// Package match implements the two-stage industry matching pipeline: a
// deterministic lexical scorer over the taxonomy followed by an optional
// semantic re-ranking stage, either embedding similarity or LLM refinement.
//
// The two semantic strategies are deliberately separate code paths selected
// at construction time. A matcher always produces a (possibly empty) code
// list; capability failures degrade to lexical ranking and are logged, never
// returned.
package match
