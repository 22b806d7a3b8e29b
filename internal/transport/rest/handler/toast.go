package handler

import (
	"net/http"

	"bimillog/internal/toast"

	"github.com/gorilla/mux"
)

// ToastHandler exposes a session's toast queue for clients without a websocket
type ToastHandler struct {
	toasts *toast.Registry
}

// NewToastHandler creates a new toast handler
func NewToastHandler(toasts *toast.Registry) *ToastHandler {
	return &ToastHandler{toasts: toasts}
}

// List handles GET /v1/toasts
//
//	@Summary	Visible toasts of this browser session, oldest first
//	@Tags		toasts
//	@Produce	json
//	@Success	200	{object}	model.Result[[]toast.Toast]
//	@Router		/toasts [get]
func (h *ToastHandler) List(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, http.StatusOK, h.toasts.List(sessionID(r)))
}

// Dismiss handles DELETE /v1/toasts/{id}. Dismissing an unknown toast is a no-op.
func (h *ToastHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	removed := h.toasts.Remove(sessionID(r), mux.Vars(r)["id"])
	writeOK(w, r, http.StatusOK, map[string]bool{"removed": removed})
}
