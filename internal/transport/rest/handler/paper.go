package handler

import (
	"net/http"
	"strings"

	"bimillog/internal/model"
	"bimillog/internal/service"

	"github.com/gorilla/mux"
)

// PaperHandler handles rolling-paper endpoints
type PaperHandler struct {
	paperSvc *service.PaperService
}

// NewPaperHandler creates a new paper handler
func NewPaperHandler(paperSvc *service.PaperService) *PaperHandler {
	return &PaperHandler{paperSvc: paperSvc}
}

// Mine handles GET /v1/paper?mobile=
//
//	@Summary	The signed-in member's rolling paper, laid out in pages
//	@Tags		paper
//	@Produce	json
//	@Param		mobile	query		bool	false	"use the mobile layout"
//	@Success	200		{object}	model.Result[service.PaperGrid[model.Message]]
//	@Failure	401		{object}	model.Result[any]
//	@Router		/paper [get]
func (h *PaperHandler) Mine(w http.ResponseWriter, r *http.Request) {
	g, err := h.paperSvc.MyPaper(r.Context(), sessionID(r), queryBool(r, "mobile"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, g)
}

// Visit handles GET /v1/paper/{memberName}?mobile=
//
//	@Summary	Someone's rolling paper as a visitor sees it
//	@Tags		paper
//	@Produce	json
//	@Param		memberName	path		string	true	"paper owner"
//	@Param		mobile		query		bool	false	"use the mobile layout"
//	@Success	200			{object}	model.Result[service.PaperGrid[model.VisitMessage]]
//	@Failure	404			{object}	model.Result[any]
//	@Router		/paper/{memberName} [get]
func (h *PaperHandler) Visit(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["memberName"]
	g, err := h.paperSvc.VisitPaper(r.Context(), name, queryBool(r, "mobile"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, g)
}

// Write handles POST /v1/paper/{memberName}
//
//	@Summary	Leave a message on someone's paper
//	@Tags		paper
//	@Accept		json
//	@Produce	json
//	@Param		memberName	path		string						true	"paper owner"
//	@Param		body		body		model.WriteMessageRequest	true	"message"
//	@Success	200			{object}	model.Result[any]
//	@Failure	400			{object}	model.Result[any]
//	@Router		/paper/{memberName} [post]
func (h *PaperHandler) Write(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(mux.Vars(r)["memberName"])
	var req model.WriteMessageRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if err := h.paperSvc.Write(r.Context(), sessionID(r), name, req); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Delete handles POST /v1/paper/delete
func (h *PaperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteMessageRequest
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if req.ID <= 0 {
		writeFail(w, r, model.ValidationError{Field: "id", Reason: "required"})
		return
	}
	if err := h.paperSvc.Delete(r.Context(), sessionID(r), req.ID); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Grid handles GET /v1/paper/grid?memberName=&mobile=. Without a member
// name it serves the signed-in member's own paper.
func (h *PaperHandler) Grid(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("memberName"))
	if name == "" {
		h.Mine(w, r)
		return
	}
	g, err := h.paperSvc.VisitPaper(r.Context(), name, queryBool(r, "mobile"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, g)
}

// Coords handles GET /v1/paper/grid/coords?page=&gridX=&gridY=&mobile=
//
//	@Summary	Map a page-local cell back to board coordinates
//	@Tags		paper
//	@Produce	json
//	@Param		page	query		int		true	"0-based page"
//	@Param		gridX	query		int		true	"0-based column within the page"
//	@Param		gridY	query		int		true	"0-based row"
//	@Param		mobile	query		bool	false	"use the mobile layout"
//	@Success	200		{object}	model.Result[service.Coords]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/paper/grid/coords [get]
func (h *PaperHandler) Coords(w http.ResponseWriter, r *http.Request) {
	var cell [3]int
	for i, name := range []string{"page", "gridX", "gridY"} {
		if r.URL.Query().Get(name) == "" {
			writeFail(w, r, model.ValidationError{Field: name, Reason: "required"})
			return
		}
		v, err := queryInt(r, name, 0)
		if err != nil {
			writeFail(w, r, err)
			return
		}
		cell[i] = v
	}

	c, err := h.paperSvc.Coords(cell[0], cell[1], cell[2], queryBool(r, "mobile"))
	if err != nil {
		writeFail(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, c)
}
