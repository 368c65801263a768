package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidInput, "keep fraction %v outside [0,1]", 1.5)
	assert.Equal(t, ErrCodeInvalidInput, err.Code)
	assert.Equal(t, "INVALID_INPUT: keep fraction 1.5 outside [0,1]", err.Error())

	cause := errors.New("disk full")
	wrapped := Wrap(ErrCodeStorage, cause, "record export %03d", 7)
	assert.Equal(t, "STORAGE_ERROR: record export 007: disk full", wrapped.Error())
	assert.Same(t, cause, errors.Unwrap(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		invalid bool
	}{
		{"coded", New(ErrCodeInvalidParameters, "x"), ErrCodeInvalidParameters, true},
		{"outermost wins", Wrap(ErrCodeStorage, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeStorage, false},
		{"behind fmt", fmt.Errorf("load: %w", New(ErrCodeInvalidConfig, "x")), ErrCodeInvalidConfig, true},
		{"plain", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.Equal(t, tt.invalid, IsInvalid(tt.err))
			if tt.code != "" {
				assert.True(t, Is(tt.err, tt.code))
			}
			assert.False(t, Is(tt.err, ErrCodeUnsupported))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "friendly message", UserMessage(New(ErrCodeInvalidInput, "friendly message")))
	assert.Equal(t, "open font: no such file",
		UserMessage(Wrap(ErrCodeFileNotFound, errors.New("no such file"), "open font")))
	assert.Equal(t, "plain error", UserMessage(errors.New("plain error")))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, ExitInterrupted, ExitCode(context.Canceled))
	assert.Equal(t, ExitInterrupted, ExitCode(Wrap(ErrCodeInternal, context.Canceled, "generate")))
	assert.Equal(t, ExitUsage, ExitCode(New(ErrCodeInvalidPath, "x")))
	assert.Equal(t, ExitFailure, ExitCode(New(ErrCodeStorage, "x")))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}
