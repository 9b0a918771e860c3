package models

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// MaxConversationIDLength matches the conversation_id column size.
const MaxConversationIDLength = 100

// ChatMessage is one persisted turn. Messages are append-only.
type ChatMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *uint     `json:"userId"`
	ConversationID string    `gorm:"not null;size:100;index:idx_chat_conversation,priority:1" json:"conversationId"`
	Role           string    `gorm:"not null;size:16" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"index:idx_chat_conversation,priority:2" json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_history" }
