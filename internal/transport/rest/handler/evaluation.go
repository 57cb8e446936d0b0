package handler

import (
	"encoding/json"
	"menteazul/internal/model"
	"menteazul/internal/qchat"
	"menteazul/internal/service"
	"menteazul/internal/transport/rest/middleware"
	"net/http"
)

// EvaluationHandler scores answer sets
type EvaluationHandler struct {
	evalSvc *service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evalSvc *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalSvc: evalSvc}
}

// Score handles POST /v1/score; nothing is stored
func (h *EvaluationHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req qchat.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eval, err := h.evalSvc.Score(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// Submit handles POST /v1/evaluations
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.evalSvc.Submit(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
