package store

import "dataweaver-be/internal/entity"

// ChatMessage is one turn in a session's chat history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Session is the per-user in-memory state: one working table slot and two
// independent chat histories. A new search replaces the table wholesale and
// clears both histories; nothing is merged incrementally.
type Session struct {
	ID    string `json:"id"`
	Query string `json:"query"`

	Table      []entity.ProductRecord `json:"table"`
	Provenance entity.Provenance      `json:"provenance"`

	DataChatMessages      []ChatMessage `json:"data_chat_messages"`
	AssistantChatMessages []ChatMessage `json:"assistant_chat_messages"`

	// OllamaModel is the user-editable local model name for the data chat.
	OllamaModel string `json:"ollama_model"`

	// ContextInjected is set once the working table has been pushed into the
	// assistant chat history, so it only happens on the first message.
	ContextInjected bool `json:"context_injected"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ResetForSearch installs a fresh table and drops all chat state, keeping
// only the chosen local model name.
func (s *Session) ResetForSearch(query string, table []entity.ProductRecord, provenance entity.Provenance) {
	s.Query = query
	s.Table = table
	s.Provenance = provenance
	s.DataChatMessages = nil
	s.AssistantChatMessages = nil
	s.ContextInjected = false
}

func (s *Session) HasTable() bool {
	return len(s.Table) > 0
}
