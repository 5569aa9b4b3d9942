package evaluation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terra-clan/interview-engine/internal/genai"
	"github.com/terra-clan/interview-engine/internal/models"
)

// Evaluator scores a free-text answer against its question using the
// generative backend. Backend failures and malformed output are absorbed
// by a deterministic heuristic, so it never fails outward.
type Evaluator struct {
	client genai.Client
}

// NewEvaluator creates an answer evaluator
func NewEvaluator(client genai.Client) *Evaluator {
	return &Evaluator{client: client}
}

// Evaluate returns a well-formed evaluation for the answer
func (e *Evaluator) Evaluate(ctx context.Context, question, answer, jobTitle string) *models.EvaluationResult {
	prompt := buildEvaluationPrompt(question, answer, jobTitle)

	text, err := e.client.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("answer evaluation failed, using heuristic",
			"job_title", jobTitle,
			"error", err,
		)
		return heuristicEvaluation(question, answer)
	}

	result, err := parseEvaluation(text)
	if err != nil {
		slog.Warn("evaluation response malformed, using heuristic",
			"job_title", jobTitle,
			"error", err,
		)
		return heuristicEvaluation(question, answer)
	}

	return result
}

func buildEvaluationPrompt(question, answer, jobTitle string) string {
	return fmt.Sprintf(`As an expert Excel interviewer, evaluate this answer for a %s position.

Question: %s
Answer: %s

Evaluate and return ONLY a JSON object in this exact format:
{
    "score": <number 0-10>,
    "feedback": "<one sentence evaluation>",
    "strengths": ["<strength1>", "<strength2>"],
    "improvements": ["<improvement1>", "<improvement2>"]
}`, jobTitle, question, answer)
}
