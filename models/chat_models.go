package models

import "time"

// Role identifies who authored a conversation entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	BaseRequest
	Message string `json:"message"`
}

// ConversationEntry is a single line of the session transcript
type ConversationEntry struct {
	Role      Role             `json:"role"`
	Content   string           `json:"content"`
	Sources   []SourceCitation `json:"sources"`
	Timestamp time.Time        `json:"timestamp"`
}

// ChatResponse represents the response from the chatbot
type ChatResponse struct {
	BaseResponse
	Message   string           `json:"message"`
	HTML      string           `json:"html,omitempty"` // Message rendered for literal display
	SessionID string           `json:"session_id"`
	Sources   []SourceCitation `json:"sources"`
	Provider  ProviderKind     `json:"provider"`           // Provider that produced Message
	Fallback  bool             `json:"fallback,omitempty"` // Remote provider failed, local answer used
}

// TranscriptResponse lists a session's conversation entries
type TranscriptResponse struct {
	BaseResponse
	SessionID string              `json:"session_id"`
	Entries   []ConversationEntry `json:"entries"`
}
