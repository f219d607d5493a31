package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for derived artifacts such as cached vectors.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TaxonomyEntry is one industry classification unit. The taxonomy is loaded
// once at startup and is read-only for the lifetime of the process.
type TaxonomyEntry struct {
	Code        string    // Opaque stable identifier; primary key for downstream filtering.
	Name        string    // Short human-readable industry label.
	Description string    // Longer free-text explanation of the category.
	Keywords    []string  // Ordered search terms; may overlap across entries.
	Vector      []float32 // Optional precomputed embedding of the searchable text.
}

// SearchText returns the lower-cased concatenation of name, description and
// keywords. This is the text the lexical scorer matches against and the text
// that gets embedded for semantic ranking.
func (e *TaxonomyEntry) SearchText() string {
	parts := make([]string, 0, 2+len(e.Keywords))
	parts = append(parts, e.Name)
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	parts = append(parts, e.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Fingerprint returns a content-based ID of the entry's searchable text.
// Cached vectors are keyed by fingerprint, so editing the dataset invalidates
// stale cache entries automatically.
func (e *TaxonomyEntry) Fingerprint() ID {
	return IDFromContent(e.SearchText())
}

// Match pairs a taxonomy code with a relevance score.
// Result lists are strictly descending by score and deduplicated by code.
type Match struct {
	Code  string
	Score float32
}
