package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/terra-clan/interview-engine/internal/config"
	"github.com/terra-clan/interview-engine/internal/interview"
	"github.com/terra-clan/interview-engine/internal/models"
)

// fakeService implements interview.Service for handler tests
type fakeService struct {
	interviews map[string]*models.Interview
	submitResp *models.SubmitAnswerResponse
}

func newFakeService() *fakeService {
	return &fakeService{interviews: make(map[string]*models.Interview)}
}

func (f *fakeService) Start(ctx context.Context, c models.Candidate) (*models.StartInterviewResponse, error) {
	if c.Name == "" || c.Email == "" || c.JobTitle == "" {
		return nil, fmt.Errorf("%w: missing required field", interview.ErrInvalidCandidate)
	}
	return &models.StartInterviewResponse{
		InterviewID:    "iv-123",
		Question:       "Describe your experience with pivot tables and VLOOKUP functions.",
		QuestionNumber: 1,
	}, nil
}

func (f *fakeService) Submit(ctx context.Context, id, answer string) (*models.SubmitAnswerResponse, error) {
	if answer == "" {
		return nil, interview.ErrEmptyAnswer
	}
	iv, ok := f.interviews[id]
	if !ok {
		return nil, interview.ErrNotFound
	}
	if iv.IsCompleted() {
		return nil, interview.ErrAlreadyCompleted
	}
	return f.submitResp, nil
}

func (f *fakeService) Get(ctx context.Context, id string) (*models.Interview, error) {
	iv, ok := f.interviews[id]
	if !ok {
		return nil, interview.ErrNotFound
	}
	return iv, nil
}

func (f *fakeService) Ping(ctx context.Context) error { return nil }

func newTestServer(svc interview.Service) *Server {
	return NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 8080}, svc)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestStartInterviewHandler(t *testing.T) {
	s := newTestServer(newFakeService())

	t.Run("created", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/interviews", models.StartInterviewRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			JobTitle: "Data Analyst",
		})

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Error("expected success response")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/interviews", models.StartInterviewRequest{
			Name: "Ada",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		resp := decodeResponse(t, rec)
		if resp.Error == nil || resp.Error.Code != "validation_error" {
			t.Errorf("unexpected error payload: %+v", resp.Error)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews", bytes.NewReader([]byte("not json")))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSubmitAnswerHandler(t *testing.T) {
	svc := newFakeService()
	svc.interviews["iv-123"] = &models.Interview{
		ID:     "iv-123",
		Status: models.StatusInProgress,
	}
	svc.interviews["iv-done"] = &models.Interview{
		ID:     "iv-done",
		Status: models.StatusCompleted,
	}
	svc.submitResp = &models.SubmitAnswerResponse{
		Evaluation:     &models.EvaluationResult{Score: 7, Feedback: "Good."},
		NextQuestion:   "Next question?",
		QuestionNumber: 2,
	}
	s := newTestServer(svc)

	t.Run("ok", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/interviews/iv-123/answers", models.SubmitAnswerRequest{
			Answer: "I would use VLOOKUP.",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp struct {
			Success bool                        `json:"success"`
			Data    models.SubmitAnswerResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Data.Evaluation == nil || resp.Data.Evaluation.Score != 7 {
			t.Errorf("unexpected evaluation: %+v", resp.Data.Evaluation)
		}
		if resp.Data.QuestionNumber != 2 {
			t.Errorf("question number = %d, want 2", resp.Data.QuestionNumber)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/interviews/nope/answers", models.SubmitAnswerRequest{
			Answer: "hello",
		})

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("empty answer", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/interviews/iv-123/answers", models.SubmitAnswerRequest{})

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("already completed", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/interviews/iv-done/answers", models.SubmitAnswerRequest{
			Answer: "late answer",
		})

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
		resp := decodeResponse(t, rec)
		if resp.Error == nil || resp.Error.Code != "already_completed" {
			t.Errorf("unexpected error payload: %+v", resp.Error)
		}
	})
}

func TestGetInterviewHandler(t *testing.T) {
	svc := newFakeService()
	svc.interviews["iv-123"] = &models.Interview{
		ID:           "iv-123",
		Status:       models.StatusInProgress,
		CurrentIndex: 1,
	}
	s := newTestServer(svc)

	t.Run("ok", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v1/interviews/iv-123", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v1/interviews/missing", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(newFakeService())

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
