package server

import (
	"encoding/json"
	"net/http"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/errors"
)

// errorBody is the JSON error envelope: {"error": {"code": ..., "message": ...}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body. Encoding failures are logged and
// dropped; headers are already written at that point.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps a coded error to an HTTP status and writes the envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusFor(code), errorBody{
		Error: errorDetail{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

// statusFor maps error codes to HTTP statuses. Unknown codes are internal
// errors.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidName,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDimensions,
		errors.ErrCodeInvalidUpload,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeModelNotFound,
		errors.ErrCodeCaseNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeUploadNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
