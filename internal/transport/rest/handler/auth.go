package handler

import (
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// AuthHandler handles sign-in endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
//
//	@Summary	Sign in with a social provider callback code
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.LoginRequest	true	"provider callback"
//	@Success	200		{object}	model.Result[model.LoginResult]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	provider, err := model.ParseSocialProvider(string(req.Provider))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	req.Provider = provider

	res, err := h.authSvc.Login(r.Context(), sessionID(r), req)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, res)
}

// Logout handles POST /v1/auth/logout
//
//	@Summary	Sign out and forget the cached session
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	model.Result[any]
//	@Router		/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context(), sessionID(r)); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Me handles GET /v1/auth/me
//
//	@Summary	Current member
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	model.Result[model.Member]
//	@Failure	401	{object}	model.Result[any]
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	m, err := h.authSvc.Me(r.Context(), sessionID(r))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, m)
}

// Status handles GET /v1/auth/status. It never calls the backend.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, http.StatusOK, h.authSvc.Status(r.Context(), sessionID(r)))
}
