package handlers

import (
	"github.com/rs/zerolog"

	"feasibility-bot/chat-api/internal/domain/chat"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat   *ChatHandler
	Health *HealthHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(chatService chat.Service, serviceName string, log zerolog.Logger) *Provider {
	return &Provider{
		Chat:   NewChatHandler(chatService, log),
		Health: NewHealthHandler(serviceName),
	}
}
