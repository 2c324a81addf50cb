package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("applying batch: %w", ErrInvalidAggregateState)
	assert.True(t, errors.Is(err, ErrInvalidAggregateState))
	assert.False(t, errors.Is(err, ErrSessionNotFound))
}

func TestIsValidation(t *testing.T) {
	err := Validation("sessions", "must not be empty")
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(fmt.Errorf("decode: %w", err)))
	assert.False(t, IsValidation(ErrNotFound))
	assert.Contains(t, err.Error(), "sessions")
}
