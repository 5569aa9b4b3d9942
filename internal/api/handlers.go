package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/interview-engine/internal/interview"
	"github.com/terra-clan/interview-engine/internal/models"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Interview handlers

func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	var req models.StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := s.engine.Start(r.Context(), models.Candidate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		if errors.Is(err, interview.ErrInvalidCandidate) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.Error("failed to start interview", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to start interview")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "interview id is required")
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := s.engine.Submit(r.Context(), id, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, interview.ErrEmptyAnswer):
			respondError(w, http.StatusBadRequest, "validation_error", "answer is required")
		case errors.Is(err, interview.ErrNotFound):
			respondError(w, http.StatusNotFound, "not_found", "interview not found")
		case errors.Is(err, interview.ErrAlreadyCompleted):
			respondError(w, http.StatusConflict, "already_completed", "interview is already completed")
		case errors.Is(err, interview.ErrSlotAnswered):
			respondError(w, http.StatusConflict, "already_answered", "current question already answered")
		default:
			slog.Error("failed to process answer", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to process answer")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "interview id is required")
		return
	}

	iv, err := s.engine.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "interview not found")
			return
		}
		slog.Error("failed to get interview", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get interview")
		return
	}

	respondJSON(w, http.StatusOK, iv)
}
