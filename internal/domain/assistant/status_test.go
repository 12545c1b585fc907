package assistant_test

import (
	"testing"

	"feasibility-bot/chat-api/internal/domain/assistant"
)

func TestRunStatus_IsActive(t *testing.T) {
	tests := []struct {
		name     string
		status   assistant.RunStatus
		expected bool
	}{
		{"queued is active", assistant.RunStatusQueued, true},
		{"in_progress is active", assistant.RunStatusInProgress, true},
		{"completed is not active", assistant.RunStatusCompleted, false},
		{"failed is not active", assistant.RunStatusFailed, false},
		{"expired is not active", assistant.RunStatusExpired, false},
		{"cancelled is not active", assistant.RunStatusCancelled, false},
		{"requires_action is not active", assistant.RunStatusRequiresAction, false},
		{"unknown status is not active", assistant.RunStatus("something_new"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsActive(); got != tt.expected {
				t.Errorf("RunStatus.IsActive() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRunStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		status   assistant.RunStatus
		expected bool
	}{
		{"queued is not terminal", assistant.RunStatusQueued, false},
		{"in_progress is not terminal", assistant.RunStatusInProgress, false},
		{"completed is terminal", assistant.RunStatusCompleted, true},
		{"failed is terminal", assistant.RunStatusFailed, true},
		{"expired is terminal", assistant.RunStatusExpired, true},
		{"cancelling is terminal", assistant.RunStatusCancelling, true},
		{"unknown status is terminal", assistant.RunStatus("something_new"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("RunStatus.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRunStatus_Succeeded(t *testing.T) {
	tests := []struct {
		name     string
		status   assistant.RunStatus
		expected bool
	}{
		{"completed succeeded", assistant.RunStatusCompleted, true},
		{"failed did not succeed", assistant.RunStatusFailed, false},
		{"expired did not succeed", assistant.RunStatusExpired, false},
		{"queued did not succeed", assistant.RunStatusQueued, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Succeeded(); got != tt.expected {
				t.Errorf("RunStatus.Succeeded() = %v, want %v", got, tt.expected)
			}
		})
	}
}
