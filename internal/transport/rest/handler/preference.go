package handler

import (
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// PreferenceHandler handles per-session UI preferences
type PreferenceHandler struct {
	prefSvc *service.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(prefSvc *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefSvc: prefSvc}
}

type themeBody struct {
	Theme model.Theme `json:"theme"`
}

// Theme handles GET /v1/preferences/theme
func (h *PreferenceHandler) Theme(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, http.StatusOK, themeBody{Theme: h.prefSvc.Theme(r.Context(), sessionID(r))})
}

// SetTheme handles PUT /v1/preferences/theme
func (h *PreferenceHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	theme, err := h.prefSvc.SetTheme(r.Context(), sessionID(r), string(req.Theme))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, themeBody{Theme: theme})
}
