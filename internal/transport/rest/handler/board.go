package handler

import (
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// BoardHandler handles post and comment endpoints
type BoardHandler struct {
	boardSvc *service.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardSvc *service.BoardService) *BoardHandler {
	return &BoardHandler{boardSvc: boardSvc}
}

// ListPosts handles GET /v1/posts?page=&size=
//
//	@Summary	Board listing
//	@Tags		board
//	@Produce	json
//	@Param		page	query		int	false	"0-based page"
//	@Param		size	query		int	false	"page size"
//	@Success	200		{object}	model.Result[model.Page[model.PostSummary]]
//	@Router		/posts [get]
func (h *BoardHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	posts, err := h.boardSvc.ListPosts(r.Context(), page)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, posts)
}

// SearchPosts handles GET /v1/posts/search?type=&query=
//
//	@Summary	Search the board
//	@Tags		board
//	@Produce	json
//	@Param		type	query		string	true	"TITLE, TITLE_CONTENT or WRITER"
//	@Param		query	query		string	true	"at least 2 characters"
//	@Success	200		{object}	model.Result[model.Page[model.PostSummary]]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/posts/search [get]
func (h *BoardHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	typ, err := model.ParseSearchType(r.URL.Query().Get("type"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	page, err := pageParams(r)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	posts, err := h.boardSvc.SearchPosts(r.Context(), typ, r.URL.Query().Get("query"), page)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, posts)
}

// PopularPosts handles GET /v1/posts/popular?period=
func (h *BoardHandler) PopularPosts(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(model.PopularRealtime)
	}
	p, err := model.ParsePopularPeriod(period)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	posts, err := h.boardSvc.PopularPosts(r.Context(), p)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, posts)
}

// GetPost handles GET /v1/posts/{postId}
func (h *BoardHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postId")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	post, err := h.boardSvc.GetPost(r.Context(), sessionID(r), id)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, post)
}

// CreatePost handles POST /v1/posts
//
//	@Summary	Write a post
//	@Tags		board
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.PostRequest	true	"post"
//	@Success	201		{object}	model.Result[model.Post]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/posts [post]
func (h *BoardHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req model.PostRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	post, err := h.boardSvc.CreatePost(r.Context(), sessionID(r), req)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusCreated, post)
}

// UpdatePost handles PUT /v1/posts/{postId}
func (h *BoardHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postId")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	var req model.PostRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.boardSvc.UpdatePost(r.Context(), sessionID(r), id, req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// DeletePost handles DELETE /v1/posts/{postId}. The body is optional and
// only carries an anonymous writer's password.
func (h *BoardHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postId")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	var req model.DeletePostRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeFail(w, r, err)
			return
		}
	}
	if err := h.boardSvc.DeletePost(r.Context(), sessionID(r), id, req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// LikePost handles POST /v1/posts/{postId}/like
func (h *BoardHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postId")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.boardSvc.LikePost(r.Context(), sessionID(r), id); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// ListComments handles GET /v1/posts/{postId}/comments
func (h *BoardHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postId")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	page, err := pageParams(r)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	comments, err := h.boardSvc.ListComments(r.Context(), sessionID(r), id, page)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, comments)
}

// PopularComments handles GET /v1/posts/{postId}/comments/popular
func (h *BoardHandler) PopularComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postId")
	if err != nil {
		writeFail(w, r, err)
		return
	}
	comments, err := h.boardSvc.PopularComments(r.Context(), sessionID(r), id)
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, comments)
}

// WriteComment handles POST /v1/comments
func (h *BoardHandler) WriteComment(w http.ResponseWriter, r *http.Request) {
	var req model.WriteCommentRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.boardSvc.WriteComment(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// UpdateComment handles POST /v1/comments/update
func (h *BoardHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCommentRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.boardSvc.UpdateComment(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// DeleteComment handles POST /v1/comments/delete
func (h *BoardHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteCommentRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.boardSvc.DeleteComment(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// LikeComment handles POST /v1/comments/like
func (h *BoardHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	var req model.LikeCommentRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.boardSvc.LikeComment(r.Context(), sessionID(r), req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}
