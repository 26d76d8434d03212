package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bookreviews/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// errorStatuses is checked in order; the first sentinel matched by errors.Is
// decides the status. Its text becomes the response message.
var errorStatuses = []struct {
	err    error
	status int
}{
	{common.ErrAlreadyExists, http.StatusBadRequest},
	{common.ErrInvalidCredentials, http.StatusBadRequest},
	{common.ErrDuplicateBook, http.StatusConflict},
	{common.ErrNoToken, http.StatusUnauthorized},
	{common.ErrTokenExpired, http.StatusUnauthorized},
	{common.ErrInvalidToken, http.StatusUnauthorized},
	{common.ErrIdentityNotFound, http.StatusUnauthorized},
	{common.ErrorUnauthorized, http.StatusUnauthorized},
	{common.ErrForbidden, http.StatusForbidden},
	{common.ErrorNotFound, http.StatusNotFound},
}

const internalMessage = "internal server error"

// statusFor maps err to a status code and client-safe message. Validation
// errors keep their field detail; anything unknown is a generic 500.
func statusFor(err error) (int, string) {
	if errors.Is(err, common.ErrValidation) {
		return http.StatusBadRequest, err.Error()
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, internalMessage
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeMessage(w, status, msg)
}

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// decodeJSON reads one JSON object into dst. Decoder detail is not echoed
// back to the client.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body too large", common.ErrValidation)
		}
		return fmt.Errorf("%w: invalid json", common.ErrValidation)
	}
	return nil
}

// intQuery parses an optional positive integer query parameter.
func intQuery(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrValidation, key)
	}
	return n, nil
}
