// Package assistant models the remote Assistants v2 protocol objects.
package assistant

// RunStatus represents the lifecycle status of an assistant run.
type RunStatus string

const (
	// Non-terminal states: the run is still being processed remotely.
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"

	// Terminal states reported by the remote service.
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusExpired        RunStatus = "expired"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusIncomplete     RunStatus = "incomplete"
)

// IsActive returns true while the run should keep being polled.
// Anything outside {queued, in_progress} stops the poll loop, including
// statuses this service has never seen before.
func (s RunStatus) IsActive() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}

// IsTerminal returns true once polling must stop.
func (s RunStatus) IsTerminal() bool {
	return !s.IsActive()
}

// Succeeded returns true only for a completed run; every other terminal
// status is a failure for the request that started the run.
func (s RunStatus) Succeeded() bool {
	return s == RunStatusCompleted
}

// String returns the string representation of the status.
func (s RunStatus) String() string {
	return string(s)
}
