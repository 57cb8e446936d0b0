package handler

import (
	"menteazul/internal/service"
	"net/http"
)

// GuideHandler serves parent guidance content
type GuideHandler struct {
	guideSvc *service.GuideService
}

// NewGuideHandler creates a new guide handler
func NewGuideHandler(guideSvc *service.GuideService) *GuideHandler {
	return &GuideHandler{guideSvc: guideSvc}
}

// Catalog handles GET /v1/guides
func (h *GuideHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.guideSvc.Catalog())
}

// Resources handles GET /v1/guides/resources
func (h *GuideHandler) Resources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.guideSvc.Resources())
}
