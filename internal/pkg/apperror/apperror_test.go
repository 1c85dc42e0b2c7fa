package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := New(http.StatusBadRequest, "base failure")

	wrapped := Wrap(sentinel, http.StatusBadRequest, "base failure: details")

	assert.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, "base failure: details", wrapped.Error())
	assert.Equal(t, http.StatusBadRequest, wrapped.Code)
}

func TestErrorsAsFindsAppError(t *testing.T) {
	err := Wrap(New(http.StatusNotFound, "gone"), http.StatusNotFound, "really gone")

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "really gone", appErr.Message)
}
