package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helpfurr/adopt-api/internal/models"
)

func TestSubmitStateHappyPath(t *testing.T) {
	state := models.SubmitStateIdle
	state = nextSubmitState(state, eventBegin)
	assert.Equal(t, models.SubmitStateValidating, state)
	state = nextSubmitState(state, eventFieldsValid)
	assert.Equal(t, models.SubmitStateSubmitting, state)
	state = nextSubmitState(state, eventAccepted)
	assert.Equal(t, models.SubmitStateSucceeded, state)
	state = nextSubmitState(state, eventReset)
	assert.Equal(t, models.SubmitStateIdle, state)
}

func TestSubmitStateFailurePaths(t *testing.T) {
	assert.Equal(t, models.SubmitStateFailed,
		nextSubmitState(models.SubmitStateValidating, eventGuardFailed))
	assert.Equal(t, models.SubmitStateInvalid,
		nextSubmitState(models.SubmitStateValidating, eventFieldsInvalid))
	assert.Equal(t, models.SubmitStateFailed,
		nextSubmitState(models.SubmitStateSubmitting, eventRejected))
}

func TestSubmitStateIgnoresOutOfOrderEvents(t *testing.T) {
	// Events that make no sense for the current state are no-ops.
	assert.Equal(t, models.SubmitStateIdle,
		nextSubmitState(models.SubmitStateIdle, eventAccepted))
	assert.Equal(t, models.SubmitStateSucceeded,
		nextSubmitState(models.SubmitStateSucceeded, eventBegin))
	assert.Equal(t, models.SubmitStateSubmitting,
		nextSubmitState(models.SubmitStateSubmitting, eventFieldsInvalid))
	assert.Equal(t, models.SubmitStateValidating,
		nextSubmitState(models.SubmitStateValidating, eventReset))
}

func TestSubmitStateResetOnlyFromTerminalStates(t *testing.T) {
	for _, terminal := range []models.SubmitState{
		models.SubmitStateInvalid,
		models.SubmitStateSucceeded,
		models.SubmitStateFailed,
	} {
		assert.Equal(t, models.SubmitStateIdle, nextSubmitState(terminal, eventReset))
	}
	assert.Equal(t, models.SubmitStateSubmitting,
		nextSubmitState(models.SubmitStateSubmitting, eventReset))
}
