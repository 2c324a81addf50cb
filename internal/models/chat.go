package model

import "time"

// Conversation est un fil de discussion entre deux utilisateurs
type Conversation struct {
	ID          string       `json:"id"`
	UserAID     string       `json:"userAId"`
	UserBID     string       `json:"userBId"`
	Other       *UserSummary `json:"other,omitempty"` // l'autre participant, vu du requérant
	LastMessage *ChatMessage `json:"lastMessage,omitempty"`
	UnreadCount int          `json:"unreadCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ChatMessage est un message d'une conversation
type ChatMessage struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	Body           string     `json:"body"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
