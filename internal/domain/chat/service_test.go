package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feasibility-bot/chat-api/internal/domain/assistant"
	"feasibility-bot/chat-api/internal/domain/chat"
	"feasibility-bot/chat-api/internal/domain/safety"
)

// fakeClient is a func-field mock of assistant.Client that counts every
// remote call.
type fakeClient struct {
	CreateAssistantFunc func(ctx context.Context, model string, temperature float32) (string, error)
	CreateThreadFunc    func(ctx context.Context) (assistant.Thread, error)
	CreateMessageFunc   func(ctx context.Context, threadID string, role assistant.MessageRole, text string) error
	CreateRunFunc       func(ctx context.Context, threadID, assistantID string) (assistant.Run, error)
	RetrieveRunFunc     func(ctx context.Context, threadID, runID string) (assistant.Run, error)
	ListMessagesFunc    func(ctx context.Context, threadID string) ([]assistant.Message, error)

	calls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: make(map[string]int)}
}

func (f *fakeClient) CreateAssistant(ctx context.Context, model string, temperature float32) (string, error) {
	f.calls["create_assistant"]++
	if f.CreateAssistantFunc != nil {
		return f.CreateAssistantFunc(ctx, model, temperature)
	}
	return "asst_test", nil
}

func (f *fakeClient) CreateThread(ctx context.Context) (assistant.Thread, error) {
	f.calls["create_thread"]++
	if f.CreateThreadFunc != nil {
		return f.CreateThreadFunc(ctx)
	}
	return assistant.Thread{ID: "thread_test"}, nil
}

func (f *fakeClient) CreateMessage(ctx context.Context, threadID string, role assistant.MessageRole, text string) error {
	f.calls["create_message"]++
	if f.CreateMessageFunc != nil {
		return f.CreateMessageFunc(ctx, threadID, role, text)
	}
	return nil
}

func (f *fakeClient) CreateRun(ctx context.Context, threadID, assistantID string) (assistant.Run, error) {
	f.calls["create_run"]++
	if f.CreateRunFunc != nil {
		return f.CreateRunFunc(ctx, threadID, assistantID)
	}
	return assistant.Run{ID: "run_test", ThreadID: threadID, Status: assistant.RunStatusQueued}, nil
}

func (f *fakeClient) RetrieveRun(ctx context.Context, threadID, runID string) (assistant.Run, error) {
	f.calls["retrieve_run"]++
	if f.RetrieveRunFunc != nil {
		return f.RetrieveRunFunc(ctx, threadID, runID)
	}
	return assistant.Run{ID: runID, ThreadID: threadID, Status: assistant.RunStatusCompleted}, nil
}

func (f *fakeClient) ListMessages(ctx context.Context, threadID string) ([]assistant.Message, error) {
	f.calls["list_messages"]++
	if f.ListMessagesFunc != nil {
		return f.ListMessagesFunc(ctx, threadID)
	}
	return []assistant.Message{{Role: assistant.RoleAssistant, Text: "assistant reply"}}, nil
}

func (f *fakeClient) remoteCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

var _ assistant.Client = (*fakeClient)(nil)

func instantSleep(ctx context.Context, d time.Duration) error { return nil }

func newTestService(client *fakeClient) *chat.ServiceImpl {
	opts := chat.Options{
		AssistantID:     "asst_configured",
		AssistantModel:  "gpt-4o-mini",
		AssistantTemp:   0.7,
		PollInterval:    time.Second,
		PollMaxAttempts: 30,
	}
	return chat.NewService(client, safety.NewKeywordFilter(), opts, zerolog.Nop()).WithSleep(instantSleep)
}

// statusSequence returns a RetrieveRun stub that walks the given statuses.
func statusSequence(statuses ...assistant.RunStatus) func(context.Context, string, string) (assistant.Run, error) {
	i := 0
	return func(ctx context.Context, threadID, runID string) (assistant.Run, error) {
		status := statuses[len(statuses)-1]
		if i < len(statuses) {
			status = statuses[i]
			i++
		}
		return assistant.Run{ID: runID, ThreadID: threadID, Status: status}, nil
	}
}

func TestSend_SuccessfulTurn(t *testing.T) {
	client := newFakeClient()
	client.RetrieveRunFunc = statusSequence(
		assistant.RunStatusInProgress,
		assistant.RunStatusInProgress,
		assistant.RunStatusCompleted,
	)
	client.ListMessagesFunc = func(ctx context.Context, threadID string) ([]assistant.Message, error) {
		return []assistant.Message{
			{Role: assistant.RoleAssistant, Text: "フィージビリティの観点では実施可能です。"},
			{Role: assistant.RoleUser, Text: "頭痛が続いています"},
		}, nil
	}
	service := newTestService(client)

	reply, err := service.Send(context.Background(), chat.SendParams{Message: "頭痛が続いています"})

	require.NoError(t, err)
	assert.Equal(t, "フィージビリティの観点では実施可能です。", reply.Text)
	assert.False(t, reply.Filtered)
	assert.True(t, strings.HasPrefix(reply.ConversationID, "conv_"), "generated token should carry conv_ prefix")
	assert.Equal(t, 1, client.calls["create_thread"])
	assert.Equal(t, 1, client.calls["create_message"])
	assert.Equal(t, 1, client.calls["create_run"])
	assert.Equal(t, 3, client.calls["retrieve_run"], "queued run should resolve after exactly 3 polls")
	assert.Equal(t, 0, client.calls["create_assistant"], "configured assistant must not be re-provisioned")
}

func TestSend_EchoesClientConversationID(t *testing.T) {
	client := newFakeClient()
	service := newTestService(client)

	reply, err := service.Send(context.Background(), chat.SendParams{
		Message:        "調査の実施可能性について",
		ConversationID: "conv_1717243200000_abc123",
	})

	require.NoError(t, err)
	assert.Equal(t, "conv_1717243200000_abc123", reply.ConversationID)
}

func TestSend_EmergencyKeywordShortCircuits(t *testing.T) {
	client := newFakeClient()
	service := newTestService(client)

	reply, err := service.Send(context.Background(), chat.SendParams{Message: "自殺について相談したいです"})

	require.NoError(t, err)
	assert.True(t, reply.Filtered)
	assert.Contains(t, reply.Text, "119番")
	assert.Equal(t, 0, client.remoteCalls(), "filtered messages must make zero remote calls")
}

func TestSend_EmergencyTakesPrecedenceOverAdvice(t *testing.T) {
	client := newFakeClient()
	service := newTestService(client)

	reply, err := service.Send(context.Background(), chat.SendParams{Message: "心停止の治療法について"})

	require.NoError(t, err)
	assert.True(t, reply.Filtered)
	assert.Contains(t, reply.Text, "119番", "emergency reply expected, not the advice disclaimer")
	assert.Equal(t, 0, client.remoteCalls())
}

func TestSend_StuckRunTimesOut(t *testing.T) {
	client := newFakeClient()
	client.RetrieveRunFunc = func(ctx context.Context, threadID, runID string) (assistant.Run, error) {
		return assistant.Run{ID: runID, ThreadID: threadID, Status: assistant.RunStatusInProgress}, nil
	}
	service := newTestService(client)

	_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

	require.Error(t, err)
	assert.True(t, chat.IsTimeout(err), "attempt cap must surface as a timeout, not a run failure")
	assert.Equal(t, "タイムアウトしました", chat.UserMessageFor(err))
	assert.Equal(t, 30, client.calls["retrieve_run"], "polling must stop at the attempt cap")
	assert.Equal(t, 0, client.calls["list_messages"], "no extraction after timeout")
}

func TestSend_FailedRunIsNotATimeout(t *testing.T) {
	client := newFakeClient()
	client.RetrieveRunFunc = statusSequence(assistant.RunStatusFailed)
	service := newTestService(client)

	_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

	require.Error(t, err)
	assert.False(t, chat.IsTimeout(err))
	assert.Equal(t, "アシスタントの実行が失敗しました", chat.UserMessageFor(err))
}

func TestSend_ExpiredRunFails(t *testing.T) {
	client := newFakeClient()
	client.RetrieveRunFunc = statusSequence(assistant.RunStatusExpired)
	service := newTestService(client)

	_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

	require.Error(t, err)
	assert.False(t, chat.IsTimeout(err))
}

func TestSend_EmptyAssistantTextFallsBack(t *testing.T) {
	client := newFakeClient()
	client.ListMessagesFunc = func(ctx context.Context, threadID string) ([]assistant.Message, error) {
		return []assistant.Message{{Role: assistant.RoleAssistant, Text: ""}}, nil
	}
	service := newTestService(client)

	reply, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

	require.NoError(t, err)
	assert.Equal(t, "すみません、回答を生成できませんでした。", reply.Text)
}

func TestSend_UserRoleHeadIsExtractionFailure(t *testing.T) {
	client := newFakeClient()
	client.ListMessagesFunc = func(ctx context.Context, threadID string) ([]assistant.Message, error) {
		return []assistant.Message{{Role: assistant.RoleUser, Text: "調査について"}}, nil
	}
	service := newTestService(client)

	_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

	require.Error(t, err)
	assert.Equal(t, "レスポンスの取得に失敗しました", chat.UserMessageFor(err))
}

func TestSend_StageErrorsCarryDistinctMessages(t *testing.T) {
	boom := errors.New("upstream says no")

	tests := []struct {
		name        string
		mutate      func(*fakeClient)
		wantMessage string
	}{
		{
			name: "thread creation failure",
			mutate: func(c *fakeClient) {
				c.CreateThreadFunc = func(ctx context.Context) (assistant.Thread, error) {
					return assistant.Thread{}, boom
				}
			},
			wantMessage: "スレッド作成に失敗しました",
		},
		{
			name: "message append failure",
			mutate: func(c *fakeClient) {
				c.CreateMessageFunc = func(ctx context.Context, threadID string, role assistant.MessageRole, text string) error {
					return boom
				}
			},
			wantMessage: "メッセージ追加に失敗しました",
		},
		{
			name: "run creation failure",
			mutate: func(c *fakeClient) {
				c.CreateRunFunc = func(ctx context.Context, threadID, assistantID string) (assistant.Run, error) {
					return assistant.Run{}, boom
				}
			},
			wantMessage: "アシスタント実行に失敗しました",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			tt.mutate(client)
			service := newTestService(client)

			_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, chat.UserMessageFor(err))
			assert.True(t, errors.Is(err, boom), "cause must stay wrapped for operator logs")
		})
	}
}

func TestSend_ProvisionsAssistantOnceWhenUnconfigured(t *testing.T) {
	client := newFakeClient()
	opts := chat.Options{
		AssistantModel:  "gpt-4o-mini",
		AssistantTemp:   0.7,
		PollInterval:    time.Second,
		PollMaxAttempts: 30,
	}
	service := chat.NewService(client, safety.NewKeywordFilter(), opts, zerolog.Nop()).WithSleep(instantSleep)

	_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})
	require.NoError(t, err)
	_, err = service.Send(context.Background(), chat.SendParams{Message: "続きの調査について"})
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls["create_assistant"], "assistant is provisioned once per process")
	assert.Equal(t, 2, client.calls["create_thread"], "every turn creates a fresh thread")
}

func TestSend_ProvisionFailureIsServiceUnavailable(t *testing.T) {
	client := newFakeClient()
	client.CreateAssistantFunc = func(ctx context.Context, model string, temperature float32) (string, error) {
		return "", errors.New("quota exhausted")
	}
	opts := chat.Options{
		AssistantModel:  "gpt-4o-mini",
		PollInterval:    time.Second,
		PollMaxAttempts: 30,
	}
	service := chat.NewService(client, safety.NewKeywordFilter(), opts, zerolog.Nop()).WithSleep(instantSleep)

	_, err := service.Send(context.Background(), chat.SendParams{Message: "調査について"})

	require.Error(t, err)
	assert.Equal(t, "サービスが一時的に利用できません", chat.UserMessageFor(err))
	assert.Equal(t, 0, client.calls["create_thread"], "no thread work after provisioning failure")
}
