package ai

// Candidate is one taxonomy entry presented to a Refiner, carrying the
// heuristic score so the model can weigh prior evidence.
type Candidate struct {
	// Code is the stable taxonomy identifier.
	Code string

	// Name is the human-readable industry label.
	Name string

	// Score is the heuristic relevance score from the lexical stage.
	Score float32
}

// RankedCode is one refinement result: a candidate code with the model's
// relevance judgment.
type RankedCode struct {
	// Code is the taxonomy identifier, expected to come from the candidate list.
	Code string

	// Relevance is the model's relevance score from 0.0 (irrelevant) to 1.0
	// (exact match for the query).
	Relevance float64
}
