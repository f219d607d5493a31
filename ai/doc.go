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


// Package ai defines the capability interfaces the matcher consumes:
// text embedding and generative candidate refinement.
//
// The interfaces are provider-agnostic. The openai subpackage implements
// them against any OpenAI-compatible API via langchaingo; the mock
// subpackage provides deterministic test doubles with call counting.
// Any provider implementing the Embedder and Refiner shapes is
// substitutable.
package ai
