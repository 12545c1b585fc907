// Package chat orchestrates one user turn against the remote assistant.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"feasibility-bot/chat-api/internal/domain/assistant"
	"feasibility-bot/chat-api/internal/domain/safety"
	"feasibility-bot/chat-api/internal/infrastructure/metrics"
	"feasibility-bot/chat-api/internal/utils/idgen"
)

// fallbackReply is returned when a completed run produced no extractable
// text. An empty reply is never propagated to the caller.
const fallbackReply = "すみません、回答を生成できませんでした。"

// Service handles one chat turn end to end.
type Service interface {
	Send(ctx context.Context, params SendParams) (*Reply, error)
}

// Options carries the tunables for the orchestration service.
type Options struct {
	// AssistantID is the pre-provisioned assistant, if any. When empty an
	// assistant is created lazily on first use.
	AssistantID     string
	AssistantModel  string
	AssistantTemp   float32
	PollInterval    time.Duration
	PollMaxAttempts int
}

// SleepFunc suspends until the duration elapses or the context is done.
// Injected so tests can drive the poll loop without real waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

func ctxSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ServiceImpl provides the domain implementation.
type ServiceImpl struct {
	client     assistant.Client
	classifier safety.Classifier
	opts       Options
	sleep      SleepFunc
	log        zerolog.Logger

	mu          sync.Mutex
	assistantID string
}

// NewService wires dependencies.
func NewService(client assistant.Client, classifier safety.Classifier, opts Options, log zerolog.Logger) *ServiceImpl {
	return &ServiceImpl{
		client:      client,
		classifier:  classifier,
		opts:        opts,
		sleep:       ctxSleep,
		log:         log.With().Str("component", "chat-service").Logger(),
		assistantID: opts.AssistantID,
	}
}

// WithSleep overrides the poll delay. Test hook.
func (s *ServiceImpl) WithSleep(sleep SleepFunc) *ServiceImpl {
	s.sleep = sleep
	return s
}

// Send runs one turn: safety gate, then thread, message, run, poll, extract.
// Each remote call is attempted exactly once; failures surface as
// StageError values, never as retries.
func (s *ServiceImpl) Send(ctx context.Context, params SendParams) (*Reply, error) {
	if result := s.classifier.Classify(params.Message); result.Blocked {
		metrics.FilteredMessagesTotal.WithLabelValues(string(result.Category)).Inc()
		s.log.Info().Str("category", string(result.Category)).Msg("message blocked by safety filter")
		return &Reply{Text: result.Reply, Filtered: true}, nil
	}

	assistantID, err := s.ensureAssistant(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("provision assistant")
		return nil, newStageError(StageProvision, err)
	}

	thread, err := s.client.CreateThread(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("create thread")
		return nil, newStageError(StageThreadCreate, err)
	}

	if err := s.client.CreateMessage(ctx, thread.ID, assistant.RoleUser, params.Message); err != nil {
		s.log.Error().Err(err).Str("thread_id", thread.ID).Msg("append message")
		return nil, newStageError(StageMessageAppend, err)
	}

	run, err := s.client.CreateRun(ctx, thread.ID, assistantID)
	if err != nil {
		s.log.Error().Err(err).Str("thread_id", thread.ID).Msg("create run")
		return nil, newStageError(StageRunCreate, err)
	}

	status, err := s.awaitCompletion(ctx, run)
	if err != nil {
		return nil, err
	}
	if !status.Succeeded() {
		metrics.RunOutcomesTotal.WithLabelValues(status.String()).Inc()
		s.log.Error().
			Str("thread_id", thread.ID).
			Str("run_id", run.ID).
			Str("status", status.String()).
			Msg("run ended without completing")
		return nil, newStageError(StageRunFailed, fmt.Errorf("run %s ended with status %s", run.ID, status))
	}
	metrics.RunOutcomesTotal.WithLabelValues(status.String()).Inc()

	text, err := s.extractReply(ctx, thread.ID)
	if err != nil {
		s.log.Error().Err(err).Str("thread_id", thread.ID).Msg("extract reply")
		return nil, newStageError(StageExtract, err)
	}

	conversationID := params.ConversationID
	if conversationID == "" {
		conversationID = idgen.NewConversationToken()
	}

	return &Reply{Text: text, ConversationID: conversationID}, nil
}

// ensureAssistant returns the configured assistant or provisions one on
// first use. The provisioned ID lives for the process lifetime only.
func (s *ServiceImpl) ensureAssistant(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assistantID != "" {
		return s.assistantID, nil
	}

	id, err := s.client.CreateAssistant(ctx, s.opts.AssistantModel, s.opts.AssistantTemp)
	if err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}
	s.log.Info().Str("assistant_id", id).Msg("provisioned assistant")
	s.assistantID = id
	return id, nil
}

// awaitCompletion polls the run at a fixed interval until it leaves the
// active states or the attempt cap is reached. The cap bounds worst-case
// request latency; hitting it is a timeout, distinct from any run-reported
// terminal status.
func (s *ServiceImpl) awaitCompletion(ctx context.Context, run assistant.Run) (assistant.RunStatus, error) {
	status := run.Status
	attempts := 0

	for status.IsActive() {
		if attempts >= s.opts.PollMaxAttempts {
			metrics.RunOutcomesTotal.WithLabelValues("timeout").Inc()
			s.log.Error().
				Str("run_id", run.ID).
				Int("attempts", attempts).
				Msg("run polling timed out")
			return status, newStageError(StageRunTimeout, fmt.Errorf("run %s still %s after %d polls", run.ID, status, attempts))
		}

		if err := s.sleep(ctx, s.opts.PollInterval); err != nil {
			return status, newStageError(StageRunTimeout, err)
		}

		current, err := s.client.RetrieveRun(ctx, run.ThreadID, run.ID)
		if err != nil {
			s.log.Error().Err(err).Str("run_id", run.ID).Msg("poll run status")
			return status, newStageError(StageRunFailed, err)
		}
		status = current.Status
		attempts++
	}

	metrics.RunPollAttempts.Observe(float64(attempts))
	return status, nil
}

// extractReply takes the newest message of the thread, which must be
// assistant authored. Empty content degrades to the fixed fallback string;
// a non-assistant head is a protocol deviation and fails the request.
func (s *ServiceImpl) extractReply(ctx context.Context, threadID string) (string, error) {
	messages, err := s.client.ListMessages(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("thread %s has no messages", threadID)
	}

	head := messages[0]
	if head.Role != assistant.RoleAssistant {
		return "", fmt.Errorf("newest message in thread %s has role %q", threadID, head.Role)
	}
	if head.Text == "" {
		return fallbackReply, nil
	}
	return head.Text, nil
}

var _ Service = (*ServiceImpl)(nil)
