package assistant

import "context"

// MessageRole identifies the author of a thread message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Thread is a remote-owned conversation context. Only the identifier is
// held locally; the remote service owns its lifetime.
type Thread struct {
	ID string
}

// Message is one entry in a thread. Text carries the first content block's
// text value; the remote service may attach richer content this service
// does not consume.
type Message struct {
	ID   string
	Role MessageRole
	Text string
}

// Run is one remote computation attempt against a thread.
type Run struct {
	ID       string
	ThreadID string
	Status   RunStatus
}

// Client is the remote Assistants protocol surface the orchestrator needs.
// Implementations must return message lists newest-first, matching the
// remote service's ordering.
type Client interface {
	CreateAssistant(ctx context.Context, model string, temperature float32) (string, error)
	CreateThread(ctx context.Context) (Thread, error)
	CreateMessage(ctx context.Context, threadID string, role MessageRole, text string) error
	CreateRun(ctx context.Context, threadID, assistantID string) (Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (Run, error)
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
}
