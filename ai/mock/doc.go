// Package mock provides deterministic test doubles for the ai capability
// interfaces. The mock embedder produces stable hash-derived vectors and
// both doubles count calls, which lets tests assert that the matcher makes
// no capability calls for empty queries.
package mock
