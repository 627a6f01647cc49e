package service

import (
	"context"
	"errors"
	"testing"

	"dataweaver-be/internal/constant"
	"dataweaver-be/internal/dto"
	"dataweaver-be/internal/entity"
	"dataweaver-be/internal/repository/memory"
	"dataweaver-be/pkg/chatbot"
	"dataweaver-be/pkg/llm"
	"dataweaver-be/pkg/llm/ollama"
	"dataweaver-be/pkg/market"
	"dataweaver-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	reply       string
	err         error
	lastHistory []llm.Message
	lastOptions llm.Options
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.lastHistory = history
	s.lastOptions = llm.Options{}
	for _, opt := range opts {
		opt(&s.lastOptions)
	}
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func chatFixture(t *testing.T, provider llm.LLMProvider, geminiKey string, withTable bool) (IChatService, *memory.SessionRepository, string) {
	t.Helper()
	sessionRepo := memory.NewSessionRepository()

	session := &store.Session{ID: uuid.NewString(), OllamaModel: "qwen2.5-coder:7b"}
	if withTable {
		session.ResetForSearch("laptop", market.Enrich([]entity.ProductRecord{
			{ProductName: "Laptop Pro", Price: 45999, CurrencySymbol: "₹", Source: "TechStore", Rating: 4.5, Reviews: 320},
		}), entity.ProvenanceLive)
	}
	sessionRepo.Save(session)

	return NewChatService(provider, geminiKey, sessionRepo, nopLogger{}), sessionRepo, session.ID
}

func TestDataChatRequiresTable(t *testing.T) {
	svc, _, sessionId := chatFixture(t, &stubProvider{}, "", false)

	_, err := svc.DataChat(context.Background(), &dto.DataChatRequest{
		SessionId: sessionId,
		Prompt:    "what is the cheapest?",
	})
	assert.ErrorIs(t, err, ErrNoSearchData)
}

func TestDataChatGroundsPromptInTable(t *testing.T) {
	provider := &stubProvider{reply: "The cheapest is Laptop Pro."}
	svc, _, sessionId := chatFixture(t, provider, "", true)

	res, err := svc.DataChat(context.Background(), &dto.DataChatRequest{
		SessionId: sessionId,
		Prompt:    "what is the cheapest?",
	})
	assert.NoError(t, err)
	assert.Equal(t, "The cheapest is Laptop Pro.", res.Reply)

	// First turn is the table context, last is the user prompt.
	assert.Equal(t, "system", provider.lastHistory[0].Role)
	assert.Contains(t, provider.lastHistory[0].Content, "Laptop Pro")
	assert.Equal(t, "what is the cheapest?", provider.lastHistory[len(provider.lastHistory)-1].Content)
	assert.Equal(t, "qwen2.5-coder:7b", provider.lastOptions.Model)

	// History records both turns.
	assert.Len(t, res.History, 2)
	assert.Equal(t, store.ChatRoleUser, res.History[0].Role)
	assert.Equal(t, store.ChatRoleAssistant, res.History[1].Role)
}

func TestDataChatModelOverridePersists(t *testing.T) {
	provider := &stubProvider{reply: "ok"}
	svc, sessionRepo, sessionId := chatFixture(t, provider, "", true)

	_, err := svc.DataChat(context.Background(), &dto.DataChatRequest{
		SessionId: sessionId,
		Prompt:    "hi",
		Model:     "llama3",
	})
	assert.NoError(t, err)
	assert.Equal(t, "llama3", provider.lastOptions.Model)

	session, _ := sessionRepo.Get(sessionId)
	assert.Equal(t, "llama3", session.OllamaModel)
}

func TestDataChatFailureModes(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantReply string
	}{
		{
			name:      "server not running",
			err:       ollama.ErrUnreachable,
			wantReply: constant.OllamaUnreachableMessage,
		},
		{
			name:      "malformed response",
			err:       ollama.ErrBadResponse,
			wantReply: constant.OllamaBadResponseMessage,
		},
		{
			name:      "generic failure",
			err:       errors.New("status 500"),
			wantReply: "An error occurred: status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, sessionId := chatFixture(t, &stubProvider{err: tt.err}, "", true)

			res, err := svc.DataChat(context.Background(), &dto.DataChatRequest{
				SessionId: sessionId,
				Prompt:    "hi",
			})
			assert.NoError(t, err, "transport failures come back in-band")
			assert.Equal(t, tt.wantReply, res.Reply)
		})
	}
}

func TestAssistantChatMissingKey(t *testing.T) {
	svc, _, sessionId := chatFixture(t, &stubProvider{}, "", true)

	res, err := svc.AssistantChat(context.Background(), &dto.AssistantChatRequest{
		SessionId: sessionId,
		Prompt:    "hello",
	})
	assert.NoError(t, err, "missing credential is reported, not raised")
	assert.Equal(t, constant.GeminiMissingKeyMessage, res.Reply)
	assert.Len(t, res.History, 2)
}

func TestAssistantContextNotInjectedWithoutKey(t *testing.T) {
	svc, sessionRepo, sessionId := chatFixture(t, &stubProvider{}, "", true)

	_, err := svc.AssistantChat(context.Background(), &dto.AssistantChatRequest{
		SessionId: sessionId,
		Prompt:    "hello",
	})
	assert.NoError(t, err)

	session, _ := sessionRepo.Get(sessionId)
	assert.False(t, session.ContextInjected, "context is only injected when the assistant is reachable")
}

func TestAssistantChatInjectsContextOnce(t *testing.T) {
	svc, sessionRepo, sessionId := chatFixture(t, &stubProvider{}, "test-key", true)

	var calls [][]*chatbot.ChatHistory
	svc.(*chatService).gemini = func(ctx context.Context, apiKey string, histories []*chatbot.ChatHistory) (string, error) {
		assert.Equal(t, "test-key", apiKey)
		calls = append(calls, histories)
		return "cloud reply", nil
	}

	res, err := svc.AssistantChat(context.Background(), &dto.AssistantChatRequest{
		SessionId: sessionId,
		Prompt:    "first question",
	})
	assert.NoError(t, err)
	assert.Equal(t, "cloud reply", res.Reply)

	session, _ := sessionRepo.Get(sessionId)
	assert.True(t, session.ContextInjected)

	// First call carries the context pair ahead of the user's turn.
	assert.Len(t, calls[0], 3)
	assert.Equal(t, chatbot.ChatMessageRoleUser, calls[0][0].Role)
	assert.Contains(t, calls[0][0].Chat, "Laptop Pro")
	assert.Equal(t, chatbot.ChatMessageRoleModel, calls[0][1].Role)
	assert.Equal(t, constant.AssistantContextAck, calls[0][1].Chat)
	assert.Equal(t, chatbot.ChatMessageRoleUser, calls[0][2].Role)
	assert.Equal(t, "first question", calls[0][2].Chat)

	res, err = svc.AssistantChat(context.Background(), &dto.AssistantChatRequest{
		SessionId: sessionId,
		Prompt:    "second question",
	})
	assert.NoError(t, err)
	assert.Len(t, res.History, 6)

	// Second call replays the history with exactly one context pair, replies
	// mapped to the "model" role.
	assert.Len(t, calls[1], 5)
	injected := 0
	for _, h := range calls[1] {
		if h.Chat == constant.AssistantContextAck {
			injected++
		}
	}
	assert.Equal(t, 1, injected, "context pair must not be re-injected")
	assert.Equal(t, chatbot.ChatMessageRoleModel, calls[1][3].Role)
	assert.Equal(t, "cloud reply", calls[1][3].Chat)
	assert.Equal(t, chatbot.ChatMessageRoleUser, calls[1][4].Role)
	assert.Equal(t, "second question", calls[1][4].Chat)
}

func TestSetModel(t *testing.T) {
	svc, sessionRepo, sessionId := chatFixture(t, &stubProvider{}, "", false)

	res, err := svc.SetModel(context.Background(), &dto.SetModelRequest{
		SessionId: sessionId,
		Model:     "mistral",
	})
	assert.NoError(t, err)
	assert.Equal(t, "mistral", res.Model)

	session, _ := sessionRepo.Get(sessionId)
	assert.Equal(t, "mistral", session.OllamaModel)

	_, err = svc.SetModel(context.Background(), &dto.SetModelRequest{
		SessionId: uuid.NewString(),
		Model:     "mistral",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]entity.ProductRecord{
		{ProductName: "Laptop Pro", Price: 45999, CurrencySymbol: "₹", Source: "TechStore", Rating: 4.5, Reviews: 320},
	})
	assert.Contains(t, out, "product_name")
	assert.Contains(t, out, "Laptop Pro")
	assert.Contains(t, out, "45999.00")
	assert.Contains(t, out, "320")
}
