package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "computer programming activities custom software development saas consulting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestTaxonomyEntry_SearchText(t *testing.T) {
	tests := []struct {
		name  string
		entry TaxonomyEntry
		want  string
	}{
		{
			name: "full entry",
			entry: TaxonomyEntry{
				Code:        "10002115",
				Name:        "Software development",
				Description: "Companies that design and build software",
				Keywords:    []string{"software", "programming"},
			},
			want: "software development companies that design and build software software programming",
		},
		{
			name: "name only",
			entry: TaxonomyEntry{
				Code: "10001001",
				Name: "Forestry",
			},
			want: "forestry",
		},
		{
			name: "mixed case is lowered",
			entry: TaxonomyEntry{
				Code:     "10003200",
				Name:     "IT Consulting",
				Keywords: []string{"SaaS"},
			},
			want: "it consulting saas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.SearchText(); got != tt.want {
				t.Errorf("SearchText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaxonomyEntry_Fingerprint(t *testing.T) {
	a := TaxonomyEntry{Code: "1", Name: "Software development", Keywords: []string{"software"}}
	b := TaxonomyEntry{Code: "1", Name: "Software development", Keywords: []string{"software"}}
	c := TaxonomyEntry{Code: "1", Name: "Software development", Keywords: []string{"hardware"}}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("identical searchable text produced different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("different searchable text produced same fingerprint")
	}
}
