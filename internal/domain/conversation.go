package domain

import (
	"encoding/json"
	"time"
)

// Conversation groups the messages exchanged over one council session.
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	Messages       []Message `json:"messages,omitempty"`
}

// ConversationSummary is the list form of a conversation.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	MessageCount   int       `json:"message_count"`
}

// Message is a single conversation entry. Assistant messages carry the full
// deliberation record in StageData.
type Message struct {
	MessageID      string          `json:"message_id"`
	ConversationID string          `json:"conversation_id"`
	Role           MessageRole     `json:"role"`
	Content        string          `json:"content"`
	StageData      json.RawMessage `json:"stage_data,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
