package server

import (
	"encoding/json"
	"net/http"

	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/swap"
)

type errorResponse struct {
	Code      uint32 `json:"code"`
	Log       string `json:"log"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, log := errors.Info(errors.Redact(err, s.debug), s.debug)
	writeJSON(w, httpStatus(err), errorResponse{
		Code:      code,
		Log:       log,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// httpStatus maps an error to the response status code.
func httpStatus(err error) int {
	switch {
	case errors.ErrUnauthorized.Is(err):
		return http.StatusUnauthorized
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrDuplicate.Is(err), swap.ErrAlreadySettled.Is(err):
		return http.StatusConflict
	case errors.ErrPanic.Is(err), errors.ErrDatabase.Is(err):
		return http.StatusInternalServerError
	case errors.Code(err) == internalCode:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// internalCode is the code of errors that were not registered.
const internalCode = 1
