package question

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/terra-clan/interview-engine/internal/genai"
)

// minQuestionLength is the shortest backend output accepted as a usable
// question; anything at or below it triggers the bank fallback.
const minQuestionLength = 10

// Cache is an optional read-through layer in front of the backend.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Generator produces one interview question per call. It asks the
// generative backend first and falls back to the static banks on any
// failure, so it never fails outward.
type Generator struct {
	client genai.Client
	banks  *Banks
	cache  Cache
}

// NewGenerator creates a question generator. cache may be nil.
func NewGenerator(client genai.Client, banks *Banks, cache Cache) *Generator {
	return &Generator{
		client: client,
		banks:  banks,
		cache:  cache,
	}
}

// Question returns a question for the job title and 1-based question number
func (g *Generator) Question(ctx context.Context, jobTitle string, questionNumber int) string {
	key := cacheKey(jobTitle, questionNumber)

	if g.cache != nil {
		if cached, ok := g.cache.Get(ctx, key); ok {
			return cached
		}
	}

	generated, err := g.generate(ctx, jobTitle, questionNumber)
	if err != nil {
		slog.Warn("question generation failed, using fallback bank",
			"job_title", jobTitle,
			"question_number", questionNumber,
			"error", err,
		)
		return g.banks.Select(jobTitle, questionNumber)
	}

	if g.cache != nil {
		g.cache.Set(ctx, key, generated)
	}

	return generated
}

func (g *Generator) generate(ctx context.Context, jobTitle string, questionNumber int) (string, error) {
	prompt := buildQuestionPrompt(jobTitle, questionNumber)

	text, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if len(text) <= minQuestionLength {
		return "", fmt.Errorf("generated question too short or empty")
	}

	return text, nil
}

func buildQuestionPrompt(jobTitle string, questionNumber int) string {
	return fmt.Sprintf(`Create a challenging Excel-related interview question for a %s position.
The question should be specific to how %ss might use Excel in their work.
This is question number %d out of 3.
Format the response as a single question without any additional text.
Make sure the question is practical and specific to Excel functionality.`,
		jobTitle, jobTitle, questionNumber)
}

func cacheKey(jobTitle string, questionNumber int) string {
	return fmt.Sprintf("question:%s:%d", strings.ToLower(strings.TrimSpace(jobTitle)), questionNumber)
}
