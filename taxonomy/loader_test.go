package taxonomy

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sokbolag/branschmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Enriched(t *testing.T) {
	entries, err := Load(filepath.Join("testdata", "branscher.json"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var software *core.TaxonomyEntry
	for _, e := range entries {
		if e.Code == "10002115" {
			software = e
		}
	}
	require.NotNil(t, software, "fixture must contain the software development entry")
	assert.Equal(t, "Software development", software.Name)
	assert.NotEmpty(t, software.Description)
	assert.Contains(t, software.Keywords, "software")
}

func TestLoad_Minimal_SynthesizesEnrichment(t *testing.T) {
	entries, err := Load(filepath.Join("testdata", "branscher_minimal.json"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.NotEmpty(t, e.Description, "description synthesized for %s", e.Code)
		assert.NotEmpty(t, e.Keywords, "keywords synthesized for %s", e.Code)
	}

	var construction *core.TaxonomyEntry
	for _, e := range entries {
		if e.Code == "10001310" {
			construction = e
		}
	}
	require.NotNil(t, construction)
	assert.Equal(t, "Construction of buildings", construction.Description)
	// "of" is too short to become a keyword
	assert.Equal(t, []string{"construction", "buildings"}, construction.Keywords)
}

func TestLoad_Minimal_Deterministic(t *testing.T) {
	first, err := Load(filepath.Join("testdata", "branscher_minimal.json"))
	require.NoError(t, err)
	second, err := Load(filepath.Join("testdata", "branscher_minimal.json"))
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.Equal(t, first[i].Keywords, second[i].Keywords)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does_not_exist.json"))
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestLoadReader_Malformed(t *testing.T) {
	_, err := LoadReader(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, ErrDatasetMalformed)
}

func TestLoadReader_Empty(t *testing.T) {
	_, err := LoadReader(strings.NewReader("[]"))
	assert.ErrorIs(t, err, ErrDatasetEmpty)
}

func TestLoadReader_DuplicateCode(t *testing.T) {
	data := `[
		{"code": "1", "name": "Forestry"},
		{"code": "1", "name": "Fishing"}
	]`
	_, err := LoadReader(strings.NewReader(data))
	require.ErrorIs(t, err, ErrDuplicateCode)
	assert.Contains(t, err.Error(), "1")
}

func TestLoadReader_InvalidEntry(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing code", `[{"name": "Forestry"}]`},
		{"missing name", `[{"code": "1"}]`},
		{"whitespace name", `[{"code": "1", "name": "   "}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, core.ErrInvalidEntry)
		})
	}
}

func TestLoadReader_DropsBlankKeywords(t *testing.T) {
	data := `[{"code": "1", "name": "Forestry", "keywords": ["timber", "", "  ", "logging"]}]`
	entries, err := LoadReader(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"timber", "logging"}, entries[0].Keywords)
}

func TestLoadReader_AllBlankKeywordsSynthesized(t *testing.T) {
	data := `[{"code": "1", "name": "Mixed farming", "keywords": ["", "  "]}]`
	entries, err := LoadReader(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"mixed", "farming"}, entries[0].Keywords)
}

func TestSynthesizeKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "Software development", []string{"software", "development"}},
		{"punctuation split", "Hotels, restaurants & catering", []string{"hotels", "restaurants", "catering"}},
		{"short tokens dropped", "Sale of cars", []string{"sale", "cars"}},
		{"slash split", "Data processing/hosting", []string{"data", "processing", "hosting"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, synthesizeKeywords(tt.in))
		})
	}
}
