package models

// Feedback is the notice surfaced to the user at the end of a workflow.
// It maps onto the original client's modal descriptor and is always
// dismissed explicitly, never auto-hidden.
type Feedback struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SubmitState enumerates the submission lifecycle of an adoption
// application form.
type SubmitState string

const (
	SubmitStateIdle       SubmitState = "idle"
	SubmitStateValidating SubmitState = "validating"
	SubmitStateInvalid    SubmitState = "invalid"
	SubmitStateSubmitting SubmitState = "submitting"
	SubmitStateSucceeded  SubmitState = "succeeded"
	SubmitStateFailed     SubmitState = "failed"
)

// ModerationAction names an admin-initiated listing mutation.
type ModerationAction string

const (
	ModerationActionApprove ModerationAction = "approve"
	ModerationActionReject  ModerationAction = "reject"
)

// ActionOutcome is the terminal (or transient Processing) result of a
// moderation action.
type ActionOutcome string

const (
	OutcomeProcessing      ActionOutcome = "processing"
	OutcomeApproved        ActionOutcome = "approved"
	OutcomeDeleted         ActionOutcome = "deleted"
	OutcomeConnectionError ActionOutcome = "connection-error"
)
