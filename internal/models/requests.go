package models

// StartInterviewRequest is the body for beginning an interview
type StartInterviewRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	JobTitle string `json:"job_title"`
}

// StartInterviewResponse is returned after an interview begins
type StartInterviewResponse struct {
	InterviewID    string `json:"interview_id"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"question_number"`
}

// SubmitAnswerRequest is the body for answering the current question
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswerResponse is returned after an answer is evaluated.
// While questions remain it carries the next question; on the final
// answer it carries the aggregate result instead.
type SubmitAnswerResponse struct {
	Evaluation      *EvaluationResult   `json:"evaluation"`
	NextQuestion    string              `json:"next_question,omitempty"`
	QuestionNumber  int                 `json:"question_number,omitempty"`
	IsComplete      bool                `json:"is_complete"`
	FinalEvaluation *FinalEvaluation    `json:"final_evaluation,omitempty"`
	Evaluations     []*EvaluationResult `json:"evaluations,omitempty"`
}
