package evaluation

import (
	"fmt"
	"strings"

	"github.com/terra-clan/interview-engine/internal/models"
)

// heuristicEvaluation is the deterministic, backend-independent default.
// Base score 5, raised to 6 when the answer mentions an advanced Excel
// feature.
func heuristicEvaluation(question, answer string) *models.EvaluationResult {
	secondStrength := "Provided an explanation"
	if strings.Contains(answer, "=") {
		secondStrength = "Used Excel formulas in explanation"
	}

	result := &models.EvaluationResult{
		Score:    5,
		Feedback: fmt.Sprintf("Answer received for question about %s...", truncate(question, 50)),
		Strengths: []string{
			"Attempted to answer the question",
			secondStrength,
		},
		Improvements: []string{
			"Add more specific Excel function examples",
			"Include step-by-step implementation details",
			"Provide practical use cases or scenarios",
		},
	}

	lower := strings.ToLower(answer)
	if strings.Contains(lower, "vlookup") || strings.Contains(lower, "pivot") || strings.Contains(lower, "macro") {
		result.Score = 6
		result.Strengths = append(result.Strengths, "Mentioned advanced Excel features")
	}

	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
