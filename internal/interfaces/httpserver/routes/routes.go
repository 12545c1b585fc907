// Package routes registers the public API surface.
package routes

import (
	"github.com/gin-gonic/gin"

	"feasibility-bot/chat-api/internal/interfaces/httpserver/handlers"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers  *handlers.Provider
	rateLimit gin.HandlerFunc
}

// NewProvider constructs the route provider. The rate-limit middleware is
// scoped to the chat route only; health and metrics stay unmetered.
func NewProvider(handlerProvider *handlers.Provider, rateLimit gin.HandlerFunc) *Provider {
	return &Provider{
		handlers:  handlerProvider,
		rateLimit: rateLimit,
	}
}

// Register attaches all routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	api.POST("/chat", p.rateLimit, p.handlers.Chat.Send)
	api.GET("/health", p.handlers.Health.Check)
}
