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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/sokbolag/branschmatch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Refiner implements ai.Refiner using OpenAI-compatible chat APIs.
type Refiner struct {
	client       llms.Model
	minRelevance float64
	logger       *slog.Logger
}

// rankedCode is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type rankedCode struct {
	Code      string  `json:"code"`
	Relevance float64 `json:"relevance"`
}

// ranking is the wrapper structure for the LLM's JSON response.
type ranking struct {
	RankedCodes []rankedCode `json:"ranked_codes"`
}

// newRefiner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRefiner(config *ai.Config) (*Refiner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/refinement
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.RefinerHost),
		openai.WithToken("none"),
		openai.WithModel(config.RefinerModel),
	)
	if err != nil {
		return nil, err
	}

	return &Refiner{
		client:       client,
		minRelevance: config.MinRelevance,
		logger:       slog.Default().With("component", "openai-refiner"),
	}, nil
}

// NewRefiner creates a new candidate refiner using the provided configuration.
//
// Returns ai.Refiner interface to enforce abstraction.
func NewRefiner(config *ai.Config) (ai.Refiner, error) {
	return newRefiner(config)
}

// RefineCandidates asks the model to select and rank the candidates by true
// relevance to the query. It applies relevance filtering and returns only
// codes above the minimum threshold, sorted by relevance descending.
//
// Codes absent from the candidate list may still appear in the response if
// the model hallucinates; callers validate against the candidate set.
func (r *Refiner) RefineCandidates(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedCode, error) {
	query = scrubString(query)

	systemPrompt := buildSystemPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(query, candidates)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result ranking
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return []ai.RankedCode{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			r.logger.Warn("error parsing refiner response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		r.logger.Error("failed to parse refiner response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Filter by relevance and convert to ai.RankedCode
	refined := make([]ai.RankedCode, 0, len(result.RankedCodes))
	for _, rc := range result.RankedCodes {
		if rc.Relevance >= r.minRelevance {
			refined = append(refined, ai.RankedCode{
				Code:      strings.TrimSpace(rc.Code),
				Relevance: rc.Relevance,
			})
		}
	}

	// Sort by relevance (descending)
	slices.SortFunc(refined, func(a, b ai.RankedCode) int {
		if a.Relevance == b.Relevance {
			return 0
		}
		if a.Relevance < b.Relevance {
			return 1
		}
		return -1
	})

	r.logger.Debug("refined candidates",
		"candidates", len(candidates),
		"returned", len(result.RankedCodes),
		"kept", len(refined))

	return refined, nil
}
