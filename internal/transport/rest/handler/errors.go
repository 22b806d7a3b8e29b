package handler

import (
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// ErrorHandler receives client-side error reports
type ErrorHandler struct {
	reporter *service.ErrorReporter
}

// NewErrorHandler creates a new error report handler
func NewErrorHandler(reporter *service.ErrorReporter) *ErrorHandler {
	return &ErrorHandler{reporter: reporter}
}

// Report handles POST /v1/errors. It always answers 202 once the body
// parses; storage failures never reach the browser.
//
//	@Summary	Forward an unexpected client error
//	@Tags		errors
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.ErrorReport	true	"error report"
//	@Success	202		{object}	model.Result[map[string]string]
//	@Failure	400		{object}	model.Result[any]
//	@Router		/errors [post]
func (h *ErrorHandler) Report(w http.ResponseWriter, r *http.Request) {
	var report model.ErrorReport
	if err := decode(r, &report); err != nil {
		writeFail(w, r, err)
		return
	}
	if report.UserAgent == "" {
		report.UserAgent = r.UserAgent()
	}

	id := h.reporter.Report(r.Context(), sessionID(r), report)
	writeOK(w, r, http.StatusAccepted, map[string]string{"id": id})
}
