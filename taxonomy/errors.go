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


package taxonomy

import "errors"

var (
	// ErrDatasetUnavailable indicates the dataset file could not be read.
	ErrDatasetUnavailable = errors.New("taxonomy dataset unavailable")

	// ErrDatasetMalformed indicates the dataset could not be parsed.
	ErrDatasetMalformed = errors.New("taxonomy dataset malformed")

	// ErrDatasetEmpty indicates the dataset contains no entries.
	ErrDatasetEmpty = errors.New("taxonomy dataset is empty")

	// ErrDuplicateCode indicates two entries share the same code.
	ErrDuplicateCode = errors.New("duplicate taxonomy code")
)
