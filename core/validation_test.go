package core

import (
	"errors"
	"testing"
)

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *TaxonomyEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &TaxonomyEntry{
				Code: "10002115",
				Name: "Software development",
			},
			wantErr: nil,
		},
		{
			name: "valid entry with description and keywords",
			entry: &TaxonomyEntry{
				Code:        "10002115",
				Name:        "Software development",
				Description: "Companies that design and build software",
				Keywords:    []string{"software", "programming", "developer"},
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "empty code",
			entry:   &TaxonomyEntry{Name: "Software development"},
			wantErr: ErrEmptyCode,
		},
		{
			name:    "empty name",
			entry:   &TaxonomyEntry{Code: "10002115"},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEntry() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
