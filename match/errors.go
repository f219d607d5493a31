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


package match

import "errors"

var (
	// ErrTaxonomyRequired indicates the matcher was constructed without entries.
	ErrTaxonomyRequired = errors.New("taxonomy entries required")

	// ErrEmbedderRequired indicates the embedding strategy was selected
	// without an embedder.
	ErrEmbedderRequired = errors.New("embedder required for embedding strategy")

	// ErrRefinerRequired indicates the refinement strategy was selected
	// without a refiner.
	ErrRefinerRequired = errors.New("refiner required for refinement strategy")

	// ErrUnknownStrategy indicates an unrecognized ranking strategy.
	ErrUnknownStrategy = errors.New("unknown ranking strategy")
)

// errNoUsableRanking is reported to monitors when a refinement response
// contained no valid candidate codes.
var errNoUsableRanking = errors.New("refinement produced no usable ranking")
