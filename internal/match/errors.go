package match

import (
	"errors"
	"net/http"

	"github.com/DhavalSuthar-24/livescore/internal/scoring"
)

var (
	ErrNotFound     = errors.New("match not found")
	ErrConflict     = errors.New("match was changed by another request; re-fetch and retry")
	ErrForbidden    = errors.New("you are not allowed to perform this action on this match")
	ErrUnauthorized = errors.New("authentication required")
	ErrDuplicate    = errors.New("match code already exists")
)

// StatusFor maps a gate or engine error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, scoring.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case scoring.IsValidation(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text sent to the client. Internal failures are not
// described beyond a generic message.
func PublicMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// resultLabel is the metrics label for a transition outcome.
func resultLabel(err error) string {
	switch StatusFor(err) {
	case http.StatusOK:
		return "ok"
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusUnauthorized, http.StatusForbidden:
		return "denied"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	}
	return "error"
}
