package openai

import (
	"fmt"
	"strings"

	"github.com/sokbolag/branschmatch/ai"
)

const rankingResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "ranked_codes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "code": {
            "type": "string"
          },
          "relevance": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          }
        },
        "required": ["code", "relevance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["ranked_codes"],
  "additionalProperties": false
}`

const rankingPromptTemplate = `You rank Swedish industry classification codes by how well they match a free-text
industry description. You will be given the description and a numbered candidate
list of codes with names and a preliminary string-match score.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Only return codes that appear in the candidate list. Never invent codes.
- Relevance is a number from 0.0 (unrelated) to 1.0 (the description is exactly this industry).
- Omit candidates that are not a plausible match; it is valid to return "ranked_codes": [].
- Ignore the preliminary score when your own judgment disagrees; it is string matching, not understanding.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Description: "software development / saas"
Candidates:
1. code=10002115 name="Software development" score=1.60
2. code=10003200 name="IT consulting" score=0.45
3. code=10004410 name="Furniture manufacturing" score=0.20
Output:
{
  "ranked_codes": [
    {"code":"10002115","relevance":0.95},
    {"code":"10003200","relevance":0.55}
  ]
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(rankingPromptTemplate, rankingResponseSchema)
}

// buildUserPrompt formats the query and candidate list for the model.
func buildUserPrompt(query string, candidates []ai.Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Description: %q\nCandidates:\n", query)
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. code=%s name=%q score=%.2f\n", i+1, c.Code, c.Name, c.Score)
	}
	return sb.String()
}
