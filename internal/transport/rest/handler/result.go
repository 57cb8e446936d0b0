package handler

import (
	"fmt"
	"menteazul/internal/service"
	"menteazul/internal/transport/rest/middleware"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const maxListLimit = 100

// ResultHandler serves the result history
type ResultHandler struct {
	resultSvc *service.ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultSvc *service.ResultService) *ResultHandler {
	return &ResultHandler{resultSvc: resultSvc}
}

// List handles GET /v1/results?limit=
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if limit == 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	results, err := h.resultSvc.List(r.Context(), middleware.GetUserID(r.Context()), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Get handles GET /v1/results/{id}
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.resultSvc.Get(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Report handles GET /v1/results/{id}/report.pdf
func (h *ResultHandler) Report(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	pdf, err := h.resultSvc.RenderPDF(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="qchat-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
