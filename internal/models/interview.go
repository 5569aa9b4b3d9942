package models

import (
	"time"
)

// InterviewStatus represents the current state of an interview
type InterviewStatus string

const (
	StatusInProgress InterviewStatus = "in-progress"
	StatusCompleted  InterviewStatus = "completed"
)

// IsTerminal returns true if the status is a terminal state
func (s InterviewStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// QuestionCount is the fixed number of questions asked per interview
const QuestionCount = 3

// Candidate holds the profile captured when an interview begins.
// Immutable after creation.
type Candidate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	JobTitle string `json:"job_title"`
}

// QuestionSlot is one question/answer/evaluation unit within an interview.
// Answer and Evaluation are set together, exactly once, by the submit step.
type QuestionSlot struct {
	Question   string            `json:"question"`
	Answer     *string           `json:"answer"`
	Evaluation *EvaluationResult `json:"evaluation"`
}

// Answered returns true once the slot holds an answer and its evaluation
func (s *QuestionSlot) Answered() bool {
	return s.Answer != nil && s.Evaluation != nil
}

// EvaluationResult is the structured score for one answer
type EvaluationResult struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// FinalEvaluation is the aggregate result set when an interview completes.
// Score is the rounded mean of all per-slot scores.
type FinalEvaluation struct {
	Text         string   `json:"text"`
	Score        int      `json:"score"`
	Improvements []string `json:"improvements"`
}

// Interview represents one candidate's end-to-end interview record.
// CurrentIndex is a 1-based pointer to the slot awaiting an answer.
type Interview struct {
	ID              string           `json:"id"`
	Candidate       Candidate        `json:"candidate"`
	Slots           []QuestionSlot   `json:"slots"`
	CurrentIndex    int              `json:"current_index"`
	Status          InterviewStatus  `json:"status"`
	FinalEvaluation *FinalEvaluation `json:"final_evaluation,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
}

// CurrentSlot returns the slot awaiting an answer, or nil if the
// record is out of shape (index past the appended slots).
func (iv *Interview) CurrentSlot() *QuestionSlot {
	if iv.CurrentIndex < 1 || iv.CurrentIndex > len(iv.Slots) {
		return nil
	}
	return &iv.Slots[iv.CurrentIndex-1]
}

// IsCompleted returns true once the interview reached its terminal state
func (iv *Interview) IsCompleted() bool {
	return iv.Status == StatusCompleted
}
