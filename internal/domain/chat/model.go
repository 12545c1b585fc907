package chat

// SendParams contains one user turn collected by the HTTP layer.
type SendParams struct {
	Message string
	// ConversationID is the client-supplied session label, if any. It is
	// echoed back when present and freshly generated otherwise; it never
	// maps to a remote thread.
	ConversationID string
}

// Reply is the normalized outcome of one turn.
type Reply struct {
	Text           string
	ConversationID string
	// Filtered marks replies produced by the safety gate instead of the
	// assistant.
	Filtered bool
}
