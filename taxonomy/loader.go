package taxonomy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sokbolag/branschmatch/core"
)

// rawEntry is the on-disk shape of one taxonomy entry. The enriched dataset
// carries all four fields; the minimal dataset only code and name.
type rawEntry struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Load reads a taxonomy dataset from the given path.
//
// The dataset is a JSON array of entries. A missing or unparseable file is a
// fatal error: the matcher is useless without a taxonomy. Entries missing
// description or keywords are normalized deterministically (see Normalize),
// so a minimal code+name dataset degrades match quality but never fails.
func Load(path string) ([]*core.TaxonomyEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetUnavailable, path, err)
	}
	defer f.Close()

	entries, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// LoadReader reads a taxonomy dataset from r. See Load.
func LoadReader(r io.Reader) ([]*core.TaxonomyEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}

	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetMalformed, err)
	}
	if len(raw) == 0 {
		return nil, ErrDatasetEmpty
	}

	entries := make([]*core.TaxonomyEntry, 0, len(raw))
	for _, re := range raw {
		entries = append(entries, &core.TaxonomyEntry{
			Code:        strings.TrimSpace(re.Code),
			Name:        strings.TrimSpace(re.Name),
			Description: strings.TrimSpace(re.Description),
			Keywords:    re.Keywords,
		})
	}

	if err := Normalize(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Normalize validates entries and synthesizes the enrichment fields for
// minimal entries. It is deterministic and side-effect free apart from
// mutating the given slice:
//
//   - Keywords are trimmed and blank ones dropped (a blank keyword is a
//     zero-length substring of every query)
//   - empty Description becomes the entry Name
//   - empty Keywords becomes the lower-cased punctuation-split tokens of
//     the Name that are longer than 2 characters
//
// Duplicate codes are a dataset defect and produce an error naming the code.
func Normalize(entries []*core.TaxonomyEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return err
		}
		if seen[entry.Code] {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, entry.Code)
		}
		seen[entry.Code] = true

		if entry.Description == "" {
			entry.Description = entry.Name
		}
		entry.Keywords = cleanKeywords(entry.Keywords)
		if len(entry.Keywords) == 0 {
			entry.Keywords = synthesizeKeywords(entry.Name)
		}
	}
	return nil
}

// cleanKeywords trims keywords in place and drops blank ones.
func cleanKeywords(keywords []string) []string {
	cleaned := keywords[:0]
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	return cleaned
}

// synthesizeKeywords derives search keywords from an industry name by
// splitting on punctuation and whitespace and keeping lower-cased tokens
// longer than 2 characters.
func synthesizeKeywords(name string) []string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		switch r {
		case ' ', '\t', ',', '.', ';', ':', '/', '&', '-', '(', ')':
			return true
		}
		return false
	})

	keywords := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) > 2 {
			keywords = append(keywords, field)
		}
	}
	return keywords
}
