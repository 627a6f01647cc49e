package dto

import "dataweaver-be/internal/entity"

type SearchRequest struct {
	// SessionId is optional; a new session is created when it is absent or
	// unknown.
	SessionId  string `json:"session_id,omitempty" validate:"omitempty,uuid4"`
	Query      string `json:"query" validate:"required,min=1,max=200"`
	MaxResults int    `json:"max_results,omitempty" validate:"omitempty,min=1,max=100"`
}

type TrendingProductDTO struct {
	entity.ProductRecord
	TrendingScore float64 `json:"trending_score"`
}

type SearchResponse struct {
	SessionId  string                 `json:"session_id"`
	Query      string                 `json:"query"`
	Provenance entity.Provenance      `json:"provenance"`
	Products   []entity.ProductRecord `json:"products"`
	Insights   *entity.Insights       `json:"insights,omitempty"`
	Trending   []TrendingProductDTO   `json:"trending,omitempty"`
	CsvPath    string                 `json:"csv_path,omitempty"`
}

type SessionStateResponse struct {
	SessionId     string            `json:"session_id"`
	Query         string            `json:"query,omitempty"`
	HasTable      bool              `json:"has_table"`
	Provenance    entity.Provenance `json:"provenance,omitempty"`
	ProductCount  int               `json:"product_count"`
	OllamaModel   string            `json:"ollama_model"`
	DataChatTurns int               `json:"data_chat_turns"`
	CloudTurns    int               `json:"cloud_chat_turns"`
}
