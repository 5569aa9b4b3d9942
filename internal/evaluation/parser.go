package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/terra-clan/interview-engine/internal/models"
)

// rawEvaluation mirrors the JSON shape the backend is asked to produce.
// Pointers distinguish missing fields from zero values.
type rawEvaluation struct {
	Score        *float64  `json:"score"`
	Feedback     *string   `json:"feedback"`
	Strengths    *[]string `json:"strengths"`
	Improvements *[]string `json:"improvements"`
}

// parseEvaluation applies the two-stage parse strategy: a strict parse of
// the full response first, then a parse of the first balanced brace span
// found in the raw text. The order matters: it decides which malformed
// inputs recover and which fall through to the heuristic.
func parseEvaluation(text string) (*models.EvaluationResult, error) {
	text = strings.TrimSpace(text)

	if result, err := parseStrict(text); err == nil {
		return result, nil
	}

	span, ok := extractBraceSpan(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	result, err := parseStrict(span)
	if err != nil {
		return nil, fmt.Errorf("extracted JSON invalid: %w", err)
	}

	return result, nil
}

func parseStrict(text string) (*models.EvaluationResult, error) {
	var raw rawEvaluation
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	if raw.Score == nil || raw.Feedback == nil || raw.Strengths == nil || raw.Improvements == nil {
		return nil, fmt.Errorf("missing required fields")
	}

	if *raw.Feedback == "" {
		return nil, fmt.Errorf("feedback is empty")
	}

	score := int(math.Round(*raw.Score))
	if score < 0 || score > 10 {
		return nil, fmt.Errorf("score %v out of range", *raw.Score)
	}

	return &models.EvaluationResult{
		Score:        score,
		Feedback:     *raw.Feedback,
		Strengths:    *raw.Strengths,
		Improvements: *raw.Improvements,
	}, nil
}

// extractBraceSpan returns the first balanced {...} span in text.
// Braces inside JSON strings are skipped.
func extractBraceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
