package handler

import (
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// MemberHandler handles account endpoints
type MemberHandler struct {
	memberSvc *service.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberSvc *service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Blacklist handles GET /v1/member/blacklist
func (h *MemberHandler) Blacklist(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	list, err := h.memberSvc.Blacklist(r.Context(), sessionID(r), page)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, list)
}

// AddBlacklist handles POST /v1/member/blacklist
func (h *MemberHandler) AddBlacklist(w http.ResponseWriter, r *http.Request) {
	var req model.BlacklistAddRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.memberSvc.AddBlacklist(r.Context(), sessionID(r), req.MemberName); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// RemoveBlacklist handles DELETE /v1/member/blacklist/{id}?page=
func (h *MemberHandler) RemoveBlacklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	req := model.BlacklistRemoveRequest{ID: id, Page: page}
	if err := h.memberSvc.RemoveBlacklist(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Setting handles GET /v1/member/setting
func (h *MemberHandler) Setting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.memberSvc.Setting(r.Context(), sessionID(r))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, setting)
}

// UpdateSetting handles PUT /v1/member/setting
func (h *MemberHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var setting model.Setting
	if err := decode(r, &setting); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.memberSvc.UpdateSetting(r.Context(), sessionID(r), setting); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// UpdateMemberName handles PATCH /v1/member/username
//
//	@Summary	Rename the signed-in member
//	@Tags		member
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.UpdateNameRequest	true	"new name"
//	@Success	200		{object}	model.Result[any]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/member/username [patch]
func (h *MemberHandler) UpdateMemberName(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateNameRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.memberSvc.UpdateMemberName(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// CheckMemberName handles GET /v1/member/username/check?memberName=
func (h *MemberHandler) CheckMemberName(w http.ResponseWriter, r *http.Request) {
	available, err := h.memberSvc.CheckMemberName(r.Context(), r.URL.Query().Get("memberName"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, map[string]bool{"available": available})
}

// SubmitReport handles POST /v1/member/report
//
//	@Summary	Report content, a bug or an improvement idea
//	@Tags		member
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.ReportRequest	true	"report"
//	@Success	200		{object}	model.Result[any]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/member/report [post]
func (h *MemberHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req model.ReportRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.memberSvc.SubmitReport(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Withdraw handles DELETE /v1/member
func (h *MemberHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	if err := h.memberSvc.Withdraw(r.Context(), sessionID(r)); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}
