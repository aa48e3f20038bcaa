package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Conversation struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	User      *User          `json:"-" gorm:"foreignKey:UserID"`
	Title     *string        `json:"title"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ConversationMetadata is the JSON document stored in Conversation.Metadata.
type ConversationMetadata struct {
	Responder string `json:"responder,omitempty"`
}

// Message is one chat turn half. Messages are append-only.
type Message struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	ConversationID uuid.UUID     `json:"conversation_id" gorm:"type:uuid;not null;index"`
	Conversation   *Conversation `json:"-" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Role           MessageRole   `json:"role" gorm:"not null"`
	Content        string        `json:"content" gorm:"type:text;not null"`
	CreatedAt      time.Time     `json:"created_at" gorm:"index"`
}
