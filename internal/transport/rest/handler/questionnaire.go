package handler

import (
	"menteazul/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

// QuestionnaireHandler exposes the questionnaire catalogue
type QuestionnaireHandler struct {
	svc *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(svc *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{svc: svc}
}

// List handles GET /v1/questionnaires
func (h *QuestionnaireHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListVariants())
}

// GetAgeGroup handles GET /v1/questionnaires/{variant}/groups/{group}
func (h *QuestionnaireHandler) GetAgeGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	group, err := h.svc.GetAgeGroup(vars["variant"], vars["group"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}
