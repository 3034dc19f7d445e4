package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MorningZephyr/zhen-bot/internal/llm"
	"github.com/MorningZephyr/zhen-bot/internal/models"
)

const extractionPromptTemplate = `
Analyze this statement about a person and extract factual information that can be stored as key-value pairs.

Statement: "%s"

Extract facts in this JSON format:
{
  "facts": [
    {"key": "descriptive_key_name", "value": "fact_value", "confidence": "high|medium|low"}
  ],
  "is_factual": true|false,
  "reasoning": "brief explanation"
}

Guidelines:
- Only extract stable, verifiable facts (not opinions, questions, or temporary states)
- Use clear, descriptive key names (e.g., "favorite_color", "profession", "hometown")
- Confidence: "high" for clear facts, "medium" for likely facts, "low" for uncertain
- Set is_factual=false for questions, greetings, or non-factual content
- Multiple facts from one statement are allowed

Examples:
- "My favorite color is blue" -> {"key": "favorite_color", "value": "blue", "confidence": "high"}
- "I work at Google as a software engineer" -> Two facts: profession and employer
- "I think I might like hiking" -> {"key": "hobby", "value": "hiking", "confidence": "low"}
`

// LlmExtractor asks the text-generation collaborator for a structured
// extraction and parses the response defensively. The collaborator's output
// is untrusted text that should contain one embedded JSON object; anything
// else becomes an is_factual=false result.
type LlmExtractor struct {
	llm llm.LLM
}

// NewLlmExtractor creates a new LlmExtractor on top of an LLM client.
func NewLlmExtractor(client llm.LLM) *LlmExtractor {
	return &LlmExtractor{llm: client}
}

// Extract implements Extractor.
func (e *LlmExtractor) Extract(ctx context.Context, statement string) *models.ExtractionResult {
	prompt := fmt.Sprintf(extractionPromptTemplate, statement)

	resp, err := e.llm.GenerateContent(ctx, llm.TextRequest(prompt))
	if err != nil {
		return notFactual(fmt.Sprintf("LLM extraction error: %v", err))
	}

	text := resp.FirstText()
	if text == "" {
		return notFactual("No valid response from LLM")
	}

	jsonBlock, ok := extractJSONBlock(text)
	if !ok {
		return notFactual("no structured result in LLM response")
	}

	var result models.ExtractionResult
	if err := json.Unmarshal([]byte(jsonBlock), &result); err != nil {
		return notFactual(fmt.Sprintf("parse failure: %v", err))
	}

	// Confidence defaults to medium when the model leaves it out.
	for i := range result.Facts {
		if result.Facts[i].Confidence == "" {
			result.Facts[i].Confidence = models.ConfidenceMedium
		}
	}

	return &result
}

// extractJSONBlock returns the first well-formed-looking JSON object embedded
// in text, tolerating markdown code fences and surrounding prose.
func extractJSONBlock(text string) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func notFactual(reasoning string) *models.ExtractionResult {
	return &models.ExtractionResult{
		Facts:     []models.CandidateFact{},
		IsFactual: false,
		Reasoning: reasoning,
	}
}
