package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"feasibility-bot/chat-api/internal/domain/chat"
	"feasibility-bot/chat-api/internal/interfaces/httpserver/dto"
)

const missingMessageError = "メッセージが必要です"

// ChatHandler exposes the HTTP entrypoint for chat turns.
type ChatHandler struct {
	service chat.Service
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// Send handles POST /api/chat.
// Safety-filtered turns are 200 responses with filtered=true: they are
// successful, policy-compliant replies, not errors. Upstream failures are
// 500 with a stage-specific localized message; causes stay in the logs.
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: missingMessageError})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: missingMessageError})
		return
	}

	reply, err := h.service.Send(c.Request.Context(), chat.SendParams{
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		h.log.Error().Err(err).Bool("timeout", chat.IsTimeout(err)).Msg("chat turn failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: chat.UserMessageFor(err)})
		return
	}

	if reply.Filtered {
		c.JSON(http.StatusOK, dto.ChatResponse{
			Response: reply.Text,
			Filtered: true,
		})
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		Response:       reply.Text,
		ConversationID: reply.ConversationID,
	})
}
