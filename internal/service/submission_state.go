package service

import "github.com/helpfurr/adopt-api/internal/models"

// submitEvent drives the submission lifecycle reducer.
type submitEvent int

const (
	eventBegin submitEvent = iota
	eventGuardFailed
	eventFieldsInvalid
	eventFieldsValid
	eventAccepted
	eventRejected
	eventReset
)

// nextSubmitState is the pure reducer over the submission lifecycle:
//
//	Idle → Validating → (Invalid | Submitting) → (Succeeded | Failed) → Idle
//
// The entry guard (self-adoption) short-circuits Validating straight to
// Failed. Events that make no sense for the current state leave it
// unchanged, keeping the function total.
func nextSubmitState(cur models.SubmitState, ev submitEvent) models.SubmitState {
	switch ev {
	case eventBegin:
		if cur == models.SubmitStateIdle {
			return models.SubmitStateValidating
		}
	case eventGuardFailed:
		if cur == models.SubmitStateValidating {
			return models.SubmitStateFailed
		}
	case eventFieldsInvalid:
		if cur == models.SubmitStateValidating {
			return models.SubmitStateInvalid
		}
	case eventFieldsValid:
		if cur == models.SubmitStateValidating {
			return models.SubmitStateSubmitting
		}
	case eventAccepted:
		if cur == models.SubmitStateSubmitting {
			return models.SubmitStateSucceeded
		}
	case eventRejected:
		if cur == models.SubmitStateSubmitting {
			return models.SubmitStateFailed
		}
	case eventReset:
		switch cur {
		case models.SubmitStateInvalid, models.SubmitStateSucceeded, models.SubmitStateFailed:
			return models.SubmitStateIdle
		}
	}
	return cur
}
