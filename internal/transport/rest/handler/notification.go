package handler

import (
	"net/http"
	"strconv"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationSvc *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationSvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List handles GET /v1/notifications?cursor=&size=
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	var req model.CursorRequest
	if v := r.URL.Query().Get("cursor"); v != "" {
		cursor, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeFail(w, r, model.ValidationError{Field: "cursor", Reason: "must be an integer"})
			return
		}
		req.Cursor = &cursor
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	req.Size = size

	page, err := h.notificationSvc.List(r.Context(), sessionID(r), req)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, page)
}

// Update handles POST /v1/notifications
func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.NotificationUpdate
	if err := decode(r, &upd); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.notificationSvc.Update(r.Context(), sessionID(r), upd); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}
