package custom_errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Adedunmol/pulso/api/custom_errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{custom_errors.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("error getting survey: %w", custom_errors.ErrNotFound), http.StatusNotFound},
		{custom_errors.ErrConflict, http.StatusConflict},
		{custom_errors.ErrAlreadyResponded, http.StatusConflict},
		{custom_errors.ErrUnauthorized, http.StatusUnauthorized},
		{custom_errors.ErrForbidden, http.StatusForbidden},
		{custom_errors.ErrSurveyNotPublished, http.StatusForbidden},
		{custom_errors.ErrSurveyExpired, http.StatusGone},
		{custom_errors.ErrTooManyQuestions, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := custom_errors.StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
