package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("All fields are required", "missing: email", nil), http.StatusBadRequest},
		{"invalid json", NewInvalidInput("bad body", errors.New("eof")), http.StatusBadRequest},
		{"data unavailable", NewDataUnavailable("resume file missing", nil), http.StatusInternalServerError},
		{"persistence", NewPersistence("disk full", nil), http.StatusInternalServerError},
		{"method", NewMethodNotAllowed(http.MethodPut, "/api/portfolio"), http.StatusMethodNotAllowed},
		{"not found", NewNotFound("route", "/nope"), http.StatusNotFound},
		{"wrapped", fmt.Errorf("get portfolio failed: %w", NewDataUnavailable("x", nil)), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestAppError_IsAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("append: %w", NewPersistence("insert failed", cause))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrDataUnavailable)

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, cause, appErr.Cause())
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestToJSON(t *testing.T) {
	body := NewValidation("All fields are required", "missing: email", nil).ToJSON()
	assert.Equal(t, "invalid input", body["error"])
	assert.Equal(t, "All fields are required", body["message"])
	assert.Equal(t, "missing: email", body["details"])

	body = NewDataUnavailable("open data/resume.json: no such file", nil).ToJSON()
	assert.Equal(t, "data unavailable", body["error"])
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}
