package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"bimillog/internal/backend"
	"bimillog/internal/model"
	"bimillog/internal/service"
	"bimillog/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.Fail[struct{}](message))
}

// writeOK answers with a successful Result, relaying backend cookies first.
func writeOK[T any](w http.ResponseWriter, r *http.Request, status int, data T) {
	relayCookies(w, r)
	writeJSON(w, status, model.Ok(data))
}

// writeDone answers a mutation that has no payload.
func writeDone(w http.ResponseWriter, r *http.Request) {
	relayCookies(w, r)
	writeJSON(w, http.StatusOK, model.Result[struct{}]{Success: true})
}

// writeFail answers with a failed Result whose status follows the error.
func writeFail(w http.ResponseWriter, r *http.Request, err error) {
	relayCookies(w, r)
	writeError(w, service.StatusCode(err), service.UserMessage(err))
}

// relayCookies passes Set-Cookie headers from backend calls on to the browser.
// Domains are dropped so the cookies bind to this host.
func relayCookies(w http.ResponseWriter, r *http.Request) {
	sink := backend.SinkFrom(r.Context())
	if sink == nil {
		return
	}
	for _, c := range sink.Cookies() {
		relayed := *c
		relayed.Domain = ""
		relayed.Raw = ""
		relayed.Unparsed = nil
		http.SetCookie(w, &relayed)
	}
}

func sessionID(r *http.Request) string {
	return middleware.GetSessionID(r.Context())
}

// decode reads a JSON body into v.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.ValidationError{Field: "body", Reason: "required"}
		}
		return model.ValidationError{Field: "body", Reason: "invalid JSON"}
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, model.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return n, nil
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func pageParams(r *http.Request) (model.PageRequest, error) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		return model.PageRequest{}, err
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		return model.PageRequest{}, err
	}
	return model.PageRequest{Page: page, Size: size}.Normalize(), nil
}
