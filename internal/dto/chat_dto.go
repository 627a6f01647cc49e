package dto

import "dataweaver-be/pkg/store"

type DataChatRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
	Prompt    string `json:"prompt" validate:"required"`
	// Model overrides the session's local model name for this and later
	// requests when set.
	Model string `json:"model,omitempty"`
}

type AssistantChatRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
	Prompt    string `json:"prompt" validate:"required"`
}

type ChatResponse struct {
	SessionId string              `json:"session_id"`
	Reply     string              `json:"reply"`
	History   []store.ChatMessage `json:"history"`
}

type SetModelRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
	Model     string `json:"model" validate:"required"`
}

type SetModelResponse struct {
	SessionId string `json:"session_id"`
	Model     string `json:"model"`
}
