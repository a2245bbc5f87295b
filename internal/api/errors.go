package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
	Cell    *[2]int   `json:"cell,omitempty"` // conflicting grid cell
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath, errs.ErrCodeGeometry:
		return http.StatusBadRequest
	case errs.ErrCodeEncodingConflict:
		return http.StatusConflict
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError sends err as a JSON error body. Server-side failures are
// logged with the request id and their message is not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if body.Code == "" {
		body.Code = errs.ErrCodeInternal
	}

	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		body.Cell = &[2]int{conflict.CellX, conflict.CellY}
		body.Message = conflict.Error()
	}

	id := RequestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", id, "err", err)
		body.Message = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: body, RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON request body into v. Unknown fields are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "malformed request body")
	}
	return nil
}
