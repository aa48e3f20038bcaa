package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypeChat MessageType = "CHAT"

	// Server to Client
	MessageTypeChatReply MessageType = "CHAT_REPLY"
	MessageTypeError     MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type ChatPayload struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id,omitempty"`
}

// Server to Client payloads

type ChatReplyPayload struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeInvalidMessage       = "INVALID_MESSAGE"
	ErrCodeInvalidPayload       = "INVALID_PAYLOAD"
	ErrCodeConversationNotFound = "CONVERSATION_NOT_FOUND"
	ErrCodeInternal             = "INTERNAL_ERROR"
)
