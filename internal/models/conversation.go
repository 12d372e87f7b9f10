package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one prompt/response exchange within a session.
// Prompt holds the Combined Input, not the rendered template.
type ConversationTurn struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID string    `gorm:"type:text;not null;index" json:"session_id"`
	Prompt    string    `gorm:"type:text" json:"prompt"`
	Response  string    `gorm:"type:text" json:"response"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;index" json:"created_at"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
