// Package openaiclient implements the assistant.Client interface against
// the OpenAI Assistants v2 API.
package openaiclient

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"feasibility-bot/chat-api/internal/domain/assistant"
	"feasibility-bot/chat-api/internal/infrastructure/metrics"
)

// Client wraps the go-openai SDK behind the domain interface.
type Client struct {
	api *openai.Client
}

// NewClient creates a client authenticated with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{api: openai.NewClient(apiKey)}
}

// CreateAssistant provisions the feasibility assistant with the production
// instruction set.
func (c *Client) CreateAssistant(ctx context.Context, model string, temperature float32) (string, error) {
	name := assistantName
	instructions := assistantInstructions
	created, err := c.api.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        model,
		Name:         &name,
		Instructions: &instructions,
		Temperature:  &temperature,
	})
	if err != nil {
		metrics.AssistantCallsTotal.WithLabelValues("create_assistant", "error").Inc()
		return "", fmt.Errorf("create assistant: %w", err)
	}
	metrics.AssistantCallsTotal.WithLabelValues("create_assistant", "success").Inc()
	return created.ID, nil
}

// CreateThread opens a fresh remote conversation context.
func (c *Client) CreateThread(ctx context.Context) (assistant.Thread, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		metrics.AssistantCallsTotal.WithLabelValues("create_thread", "error").Inc()
		return assistant.Thread{}, fmt.Errorf("create thread: %w", err)
	}
	metrics.AssistantCallsTotal.WithLabelValues("create_thread", "success").Inc()
	return assistant.Thread{ID: thread.ID}, nil
}

// CreateMessage appends a message to the thread.
func (c *Client) CreateMessage(ctx context.Context, threadID string, role assistant.MessageRole, text string) error {
	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(role),
		Content: text,
	})
	if err != nil {
		metrics.AssistantCallsTotal.WithLabelValues("create_message", "error").Inc()
		return fmt.Errorf("create message: %w", err)
	}
	metrics.AssistantCallsTotal.WithLabelValues("create_message", "success").Inc()
	return nil
}

// CreateRun starts a computation against the thread.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (assistant.Run, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{AssistantID: assistantID})
	if err != nil {
		metrics.AssistantCallsTotal.WithLabelValues("create_run", "error").Inc()
		return assistant.Run{}, fmt.Errorf("create run: %w", err)
	}
	metrics.AssistantCallsTotal.WithLabelValues("create_run", "success").Inc()
	return mapRun(run), nil
}

// RetrieveRun fetches the current run state.
func (c *Client) RetrieveRun(ctx context.Context, threadID, runID string) (assistant.Run, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		metrics.AssistantCallsTotal.WithLabelValues("retrieve_run", "error").Inc()
		return assistant.Run{}, fmt.Errorf("retrieve run: %w", err)
	}
	metrics.AssistantCallsTotal.WithLabelValues("retrieve_run", "success").Inc()
	return mapRun(run), nil
}

// ListMessages returns the thread's messages newest-first, as the remote
// service orders them.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]assistant.Message, error) {
	list, err := c.api.ListMessage(ctx, threadID, nil, nil, nil, nil, nil)
	if err != nil {
		metrics.AssistantCallsTotal.WithLabelValues("list_messages", "error").Inc()
		return nil, fmt.Errorf("list messages: %w", err)
	}
	metrics.AssistantCallsTotal.WithLabelValues("list_messages", "success").Inc()

	messages := make([]assistant.Message, 0, len(list.Messages))
	for _, msg := range list.Messages {
		messages = append(messages, assistant.Message{
			ID:   msg.ID,
			Role: assistant.MessageRole(msg.Role),
			Text: firstTextValue(msg.Content),
		})
	}
	return messages, nil
}

func mapRun(run openai.Run) assistant.Run {
	return assistant.Run{
		ID:       run.ID,
		ThreadID: run.ThreadID,
		Status:   assistant.RunStatus(run.Status),
	}
}

func firstTextValue(content []openai.MessageContent) string {
	if len(content) == 0 {
		return ""
	}
	if content[0].Text == nil {
		return ""
	}
	return content[0].Text.Value
}

var _ assistant.Client = (*Client)(nil)
