package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/interview-engine/internal/models"
	"github.com/terra-clan/interview-engine/internal/storage"
)

// Common errors
var (
	ErrNotFound         = errors.New("interview not found")
	ErrAlreadyCompleted = errors.New("interview already completed")
	ErrEmptyAnswer      = errors.New("answer must not be empty")
	ErrSlotAnswered     = errors.New("current question already answered")
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// QuestionSource produces one question per role and 1-based question
// number. It must never fail; degraded backends are its concern.
type QuestionSource interface {
	Question(ctx context.Context, jobTitle string, questionNumber int) string
}

// AnswerEvaluator scores one answer. It must never fail; degraded
// backends are its concern.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question, answer, jobTitle string) *models.EvaluationResult
}

// Service defines the interview progression interface
type Service interface {
	Start(ctx context.Context, candidate models.Candidate) (*models.StartInterviewResponse, error)
	Submit(ctx context.Context, id, answer string) (*models.SubmitAnswerResponse, error)
	Get(ctx context.Context, id string) (*models.Interview, error)
	Ping(ctx context.Context) error
}

// Engine drives the interview lifecycle: create with question 1, then for
// each submitted answer evaluate, advance or finalize, and persist the
// transition as a single combined write.
type Engine struct {
	repo      storage.Repository
	questions QuestionSource
	evaluator AnswerEvaluator
	locks     keyedMutex
}

// NewEngine creates an interview engine
func NewEngine(repo storage.Repository, questions QuestionSource, evaluator AnswerEvaluator) *Engine {
	return &Engine{
		repo:      repo,
		questions: questions,
		evaluator: evaluator,
	}
}

// Ping checks that the backing store is reachable
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Start creates an interview with its first question
func (e *Engine) Start(ctx context.Context, candidate models.Candidate) (*models.StartInterviewResponse, error) {
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	question := e.questions.Question(ctx, candidate.JobTitle, 1)

	iv := &models.Interview{
		ID:           uuid.New().String(),
		Candidate:    candidate,
		Slots:        []models.QuestionSlot{{Question: question}},
		CurrentIndex: 1,
		Status:       models.StatusInProgress,
		StartedAt:    time.Now().UTC(),
	}

	if err := e.repo.CreateInterview(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to persist interview: %w", err)
	}

	slog.Info("interview started",
		"id", iv.ID,
		"job_title", candidate.JobTitle,
	)

	return &models.StartInterviewResponse{
		InterviewID:    iv.ID,
		Question:       question,
		QuestionNumber: 1,
	}, nil
}

// Get retrieves an interview record
func (e *Engine) Get(ctx context.Context, id string) (*models.Interview, error) {
	iv, err := e.repo.GetInterview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	if iv == nil {
		return nil, ErrNotFound
	}
	return iv, nil
}

// Submit evaluates the answer to the current question and either advances
// to the next question or finalizes the interview. Concurrent submits on
// one interview id are serialized.
func (e *Engine) Submit(ctx context.Context, id, answer string) (*models.SubmitAnswerResponse, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	unlock := e.locks.lock(id)
	defer unlock()

	iv, err := e.repo.GetInterview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	if iv == nil {
		return nil, ErrNotFound
	}
	if iv.IsCompleted() {
		return nil, ErrAlreadyCompleted
	}

	slot := iv.CurrentSlot()
	if slot == nil {
		return nil, fmt.Errorf("interview %s has no slot at index %d", id, iv.CurrentIndex)
	}
	if slot.Answered() {
		return nil, ErrSlotAnswered
	}

	evaluation := e.evaluator.Evaluate(ctx, slot.Question, answer, iv.Candidate.JobTitle)
	slot.Answer = &answer
	slot.Evaluation = evaluation

	n := iv.CurrentIndex
	if n < models.QuestionCount {
		return e.advance(ctx, iv, evaluation)
	}
	return e.finalize(ctx, iv, evaluation)
}

// advance appends the next question and moves the index forward
func (e *Engine) advance(ctx context.Context, iv *models.Interview, evaluation *models.EvaluationResult) (*models.SubmitAnswerResponse, error) {
	next := iv.CurrentIndex + 1
	nextQuestion := e.questions.Question(ctx, iv.Candidate.JobTitle, next)

	iv.Slots = append(iv.Slots, models.QuestionSlot{Question: nextQuestion})
	iv.CurrentIndex = next

	if err := e.repo.UpdateProgress(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to persist progress: %w", err)
	}

	slog.Info("interview advanced",
		"id", iv.ID,
		"question_number", next,
		"score", evaluation.Score,
	)

	return &models.SubmitAnswerResponse{
		Evaluation:     evaluation,
		NextQuestion:   nextQuestion,
		QuestionNumber: next,
		IsComplete:     false,
	}, nil
}

// finalize computes the aggregate result and moves to the terminal state
func (e *Engine) finalize(ctx context.Context, iv *models.Interview, evaluation *models.EvaluationResult) (*models.SubmitAnswerResponse, error) {
	evaluations := make([]*models.EvaluationResult, 0, len(iv.Slots))
	sum := 0
	for i := range iv.Slots {
		ev := iv.Slots[i].Evaluation
		sum += ev.Score
		evaluations = append(evaluations, ev)
	}

	// math.Round is half away from zero; scores are non-negative so
	// halfway means round up.
	avgScore := int(math.Round(float64(sum) / float64(len(iv.Slots))))

	final := &models.FinalEvaluation{
		Text:         finalNarrative(avgScore, evaluation.Feedback),
		Score:        avgScore,
		Improvements: evaluation.Improvements,
	}

	now := time.Now().UTC()
	iv.Status = models.StatusCompleted
	iv.FinalEvaluation = final
	iv.CompletedAt = &now

	if err := e.repo.CompleteInterview(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to persist completion: %w", err)
	}

	slog.Info("interview completed",
		"id", iv.ID,
		"final_score", avgScore,
	)

	return &models.SubmitAnswerResponse{
		Evaluation:      evaluation,
		IsComplete:      true,
		FinalEvaluation: final,
		Evaluations:     evaluations,
	}, nil
}

func finalNarrative(avgScore int, lastFeedback string) string {
	tier := "limited"
	switch {
	case avgScore >= 7:
		tier = "strong"
	case avgScore >= 5:
		tier = "adequate"
	}

	return fmt.Sprintf("Interview completed with an average score of %d/10. The candidate demonstrated %s Excel proficiency. %s",
		avgScore, tier, lastFeedback)
}

func validateCandidate(c models.Candidate) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCandidate)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidCandidate)
	}
	if strings.TrimSpace(c.JobTitle) == "" {
		return fmt.Errorf("%w: job title is required", ErrInvalidCandidate)
	}
	return nil
}
