package handler

import (
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler handles the moderation console endpoints. Routes are mounted
// behind middleware.RequireAdmin.
type AdminHandler struct {
	adminSvc *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Reports handles GET /v1/admin/reports?page=&size=&reportType=
func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	reports, err := h.adminSvc.Reports(r.Context(), page, r.URL.Query().Get("reportType"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, reports)
}

// Report handles GET /v1/admin/reports/{id}
func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	report, err := h.adminSvc.Report(r.Context(), id)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, report)
}

// Ban handles POST /v1/admin/ban
func (h *AdminHandler) Ban(w http.ResponseWriter, r *http.Request) {
	var req model.BanRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.adminSvc.Ban(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// ForceWithdraw handles POST /v1/admin/withdraw
func (h *AdminHandler) ForceWithdraw(w http.ResponseWriter, r *http.Request) {
	var req model.BanRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.adminSvc.ForceWithdraw(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Errors handles GET /v1/admin/errors?level=&limit=
func (h *AdminHandler) Errors(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	reports, err := h.adminSvc.RecentErrors(r.Context(), r.URL.Query().Get("level"), limit)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, reports)
}

// ErrorReport handles GET /v1/admin/errors/{id}
func (h *AdminHandler) ErrorReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.adminSvc.ErrorReport(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, report)
}

// Overview handles GET /v1/admin/overview
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, http.StatusOK, h.adminSvc.Overview(r.Context()))
}
