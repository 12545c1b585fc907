// Package dto defines the JSON payloads exchanged with the chat widget.
package dto

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ChatResponse is returned on successful turns and on safety-filtered ones.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId,omitempty"`
	Filtered       bool   `json:"filtered,omitempty"`
}

// ErrorResponse carries a single user-safe message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}
