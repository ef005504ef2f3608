package custom_errors

import (
	"errors"
	"net/http"
)

// StatusCode maps a sentinel error to its HTTP status. Anything unknown is
// an internal error.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyResponded):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrSurveyNotPublished):
		return http.StatusForbidden
	case errors.Is(err, ErrSurveyExpired):
		return http.StatusGone
	case errors.Is(err, ErrTooManyQuestions):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
