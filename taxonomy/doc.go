// Package taxonomy loads the fixed industry classification dataset the
// matcher ranks against.
//
// The dataset is a versioned build artifact: a JSON array of entries with
// at minimum a code and a name, optionally enriched with a description and
// keywords. Loading happens exactly once at startup and the resulting
// entries are read-only thereafter. Minimal entries are normalized into the
// enriched shape deterministically so both dataset variants flow through
// the same matching path.
package taxonomy
