package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"atelierledger/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// DomainError maps the core's classified errors onto HTTP envelopes.
func DomainError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	var pe *apperr.PersistenceError
	switch {
	case errors.As(err, &ve):
		JSONError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Violations)
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, apperr.ErrTerminalState):
		JSONError(w, http.StatusConflict, "sale_delivered", nil)
	case errors.As(err, &pe):
		JSONError(w, http.StatusInternalServerError, "storage_error", nil)
	default:
		JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
