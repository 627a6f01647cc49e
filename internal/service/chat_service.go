package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"dataweaver-be/internal/constant"
	"dataweaver-be/internal/dto"
	"dataweaver-be/internal/entity"
	"dataweaver-be/internal/pkg/logger"
	"dataweaver-be/internal/pkg/serverutils"
	"dataweaver-be/internal/repository/memory"
	"dataweaver-be/pkg/chatbot"
	"dataweaver-be/pkg/llm"
	"dataweaver-be/pkg/llm/ollama"
	"dataweaver-be/pkg/store"
)

var ErrNoSearchData = serverutils.NewHttpError(409, "no search data in this session, run a search first")

type IChatService interface {
	DataChat(ctx context.Context, req *dto.DataChatRequest) (*dto.ChatResponse, error)
	AssistantChat(ctx context.Context, req *dto.AssistantChatRequest) (*dto.ChatResponse, error)
	SetModel(ctx context.Context, req *dto.SetModelRequest) (*dto.SetModelResponse, error)
}

type chatService struct {
	llmProvider llm.LLMProvider
	geminiKey   string
	sessionRepo *memory.SessionRepository
	sysLogger   logger.ILogger

	// gemini is the cloud call; a field so tests can stub the transport.
	gemini func(ctx context.Context, apiKey string, histories []*chatbot.ChatHistory) (string, error)
}

func NewChatService(
	llmProvider llm.LLMProvider,
	geminiKey string,
	sessionRepo *memory.SessionRepository,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		llmProvider: llmProvider,
		geminiKey:   geminiKey,
		sessionRepo: sessionRepo,
		sysLogger:   sysLogger,
		gemini:      chatbot.GetGeminiResponse,
	}
}

// DataChat answers a question about the session's working table with the
// local model. It requires a prior search. Transport failures never surface
// as errors; they come back as the assistant's reply so the conversation
// survives.
func (s *chatService) DataChat(ctx context.Context, req *dto.DataChatRequest) (*dto.ChatResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	if !session.HasTable() {
		return nil, ErrNoSearchData
	}

	if req.Model != "" {
		session.OllamaModel = req.Model
	}

	contextPrompt := fmt.Sprintf(constant.DataChatContextPrompt, RenderTable(session.Table))
	history := make([]llm.Message, 0, len(session.DataChatMessages)+2)
	history = append(history, llm.Message{Role: "system", Content: contextPrompt})
	for _, msg := range session.DataChatMessages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	history = append(history, llm.Message{Role: store.ChatRoleUser, Content: req.Prompt})

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithModel(session.OllamaModel))
	if err != nil {
		reply = ollamaFailureMessage(err)
		s.sysLogger.Warn("chat", "local model call failed", map[string]interface{}{
			"session": session.ID,
			"model":   session.OllamaModel,
			"error":   err.Error(),
		})
	}

	session.DataChatMessages = append(session.DataChatMessages,
		store.ChatMessage{Role: store.ChatRoleUser, Content: req.Prompt},
		store.ChatMessage{Role: store.ChatRoleAssistant, Content: reply},
	)
	s.sessionRepo.Save(session)

	return &dto.ChatResponse{
		SessionId: session.ID,
		Reply:     reply,
		History:   session.DataChatMessages,
	}, nil
}

// AssistantChat talks to the cloud model. No prior search is required; when a
// working table exists it is injected into the conversation once, ahead of
// the first message. A missing credential is reported in-band, not as an
// error.
func (s *chatService) AssistantChat(ctx context.Context, req *dto.AssistantChatRequest) (*dto.ChatResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	if s.geminiKey == "" {
		session.AssistantChatMessages = append(session.AssistantChatMessages,
			store.ChatMessage{Role: store.ChatRoleUser, Content: req.Prompt},
			store.ChatMessage{Role: store.ChatRoleAssistant, Content: constant.GeminiMissingKeyMessage},
		)
		s.sessionRepo.Save(session)
		return &dto.ChatResponse{
			SessionId: session.ID,
			Reply:     constant.GeminiMissingKeyMessage,
			History:   session.AssistantChatMessages,
		}, nil
	}

	if session.HasTable() && !session.ContextInjected {
		contextPrompt := fmt.Sprintf(constant.AssistantContextPrompt, RenderTable(session.Table))
		session.AssistantChatMessages = append(session.AssistantChatMessages,
			store.ChatMessage{Role: store.ChatRoleUser, Content: contextPrompt},
			store.ChatMessage{Role: store.ChatRoleAssistant, Content: constant.AssistantContextAck},
		)
		session.ContextInjected = true
	}

	histories := make([]*chatbot.ChatHistory, 0, len(session.AssistantChatMessages)+1)
	for _, msg := range session.AssistantChatMessages {
		role := chatbot.ChatMessageRoleUser
		if msg.Role == store.ChatRoleAssistant {
			role = chatbot.ChatMessageRoleModel
		}
		histories = append(histories, &chatbot.ChatHistory{Chat: msg.Content, Role: role})
	}
	histories = append(histories, &chatbot.ChatHistory{Chat: req.Prompt, Role: chatbot.ChatMessageRoleUser})

	reply, err := s.gemini(ctx, s.geminiKey, histories)
	if err != nil {
		reply = fmt.Sprintf("An error occurred with the assistant: %v", err)
		s.sysLogger.Warn("chat", "gemini call failed", map[string]interface{}{
			"session": session.ID,
			"error":   err.Error(),
		})
	}

	session.AssistantChatMessages = append(session.AssistantChatMessages,
		store.ChatMessage{Role: store.ChatRoleUser, Content: req.Prompt},
		store.ChatMessage{Role: store.ChatRoleAssistant, Content: reply},
	)
	s.sessionRepo.Save(session)

	return &dto.ChatResponse{
		SessionId: session.ID,
		Reply:     reply,
		History:   session.AssistantChatMessages,
	}, nil
}

func (s *chatService) SetModel(ctx context.Context, req *dto.SetModelRequest) (*dto.SetModelResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	session.OllamaModel = req.Model
	s.sessionRepo.Save(session)
	return &dto.SetModelResponse{
		SessionId: session.ID,
		Model:     session.OllamaModel,
	}, nil
}

// ollamaFailureMessage maps the three local-chat failure modes to distinct
// human-readable replies.
func ollamaFailureMessage(err error) string {
	switch {
	case errors.Is(err, ollama.ErrUnreachable):
		return constant.OllamaUnreachableMessage
	case errors.Is(err, ollama.ErrBadResponse):
		return constant.OllamaBadResponseMessage
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}

// RenderTable lays the working table out as aligned plain text for use as
// model context.
func RenderTable(rows []entity.ProductRecord) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "product_name\tprice\tcurrency\tsource\trating\treviews")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%.2f\t%d\n",
			r.ProductName, r.Price, r.CurrencySymbol, r.Source, r.Rating, r.Reviews)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
