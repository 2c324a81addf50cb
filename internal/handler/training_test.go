package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestAggregateFailureMessages(t *testing.T) {
	// Chaque classe d'échec ressort avec son propre message d'enveloppe,
	// même enveloppée dans du contexte
	invalid := fmt.Errorf("applying batch: %w", apperr.ErrInvalidAggregateState)
	missing := fmt.Errorf("%w: [abc]", apperr.ErrSessionNotFound)
	validation := apperr.Validation("sessions", "empty batch")
	generic := errors.New("connection reset")

	assert.Equal(t, "invalid aggregate state: batch holds no punches", aggregateFailureMessage(invalid))
	assert.Equal(t, "a session of the batch no longer exists", aggregateFailureMessage(missing))
	assert.Equal(t, "invalid session batch", aggregateFailureMessage(validation))
	assert.Equal(t, "could not update leaderboard aggregate", aggregateFailureMessage(generic))

	// Les quatre messages sont distincts deux à deux
	msgs := map[string]bool{
		aggregateFailureMessage(invalid):    true,
		aggregateFailureMessage(missing):    true,
		aggregateFailureMessage(validation): true,
		aggregateFailureMessage(generic):    true,
	}
	assert.Len(t, msgs, 4)
}
