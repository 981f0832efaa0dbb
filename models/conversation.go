package models

import "time"

// MessageType is the closed set of chat participants.
type MessageType string

const (
	UserMessage      MessageType = "user"
	AssistantMessage MessageType = "assistant"
)

// DefaultTitle is the placeholder a fresh conversation starts with. The
// first user message replaces it.
const DefaultTitle = "New Conversation"

type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Directive Directive   `json:"directive,omitempty"`
}

type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Preview  string    `json:"preview"`
	Date     string    `json:"date"`
	IsActive bool      `json:"isActive"`
	Loading  bool      `json:"loading"`
	Messages []Message `json:"messages"`
}
