package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("build report: %w", WrapError(cause, CodeFetchFailure, "failed to fetch pull requests"))

	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMalformedItem)
	assert.Equal(t, CodeFetchFailure, CodeOf(err))
	assert.Equal(t, "build report: failed to fetch pull requests: connection refused", err.Error())
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(NewError(CodeMalformedItem, "pull request 7 has no body")))
	assert.True(t, IsRecoverable(NewError(CodeRenderFailure, "render")))
	assert.False(t, IsRecoverable(NewError(CodeFetchFailure, "fetch")))
	assert.False(t, IsRecoverable(errors.New("plain")))
}
