// Copyright 2026 Sokbolag AB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateEntry validates a TaxonomyEntry according to domain rules.
//
// Validation rules:
//   - Code must not be empty
//   - Name must not be empty (entries without a name cannot participate in ranking)
//
// NOT validated (quality degrades gracefully without them):
//   - Description (may be empty)
//   - Keywords (may be empty)
//   - Vector (optional; computed lazily when absent)
func ValidateEntry(entry *TaxonomyEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyCode)
	}

	if entry.Name == "" {
		return fmt.Errorf("%w: %w (code %s)", ErrInvalidEntry, ErrEmptyName, entry.Code)
	}

	return nil
}
