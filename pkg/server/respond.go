package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/observability"
	"github.com/scaduxx/folio/pkg/site"
)

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSlug:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v before writing the header. An encoding failure is
// answered with a 500 JSON error instead of a truncated body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorBody{
			Code:    errors.ErrCodeInternal,
			Message: http.StatusText(status),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// apiError writes err as a JSON error. Internal details stay in the log.
func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logFailure(r, err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		msg = http.StatusText(status)
	}
	s.writeJSON(w, status, errorBody{Code: code, Message: msg})
}

// pageError renders the HTML error page.
func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logFailure(r, err)
		msg = "Please try again later."
	}
	s.renderStatus(w, r, status, site.Page{
		Name:  site.PageError,
		Path:  r.URL.Path,
		Title: http.StatusText(status),
		Data:  site.Error{Status: status, Message: msg},
	})
}

// render writes a full page with status 200.
func (s *Server) render(w http.ResponseWriter, r *http.Request, p site.Page) {
	s.renderStatus(w, r, http.StatusOK, p)
}

// renderStatus buffers the page so a template failure never leaves a
// half-written response.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, p site.Page) {
	var buf bytes.Buffer
	if err := s.site.Render(&buf, p); err != nil {
		if p.Name == site.PageError {
			s.logFailure(r, err)
			http.Error(w, http.StatusText(status), status)
			return
		}
		s.pageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) logFailure(r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.Host, r.URL.Path, err)
	s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
}
