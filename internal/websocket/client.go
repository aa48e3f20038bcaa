// Package websocket carries chat turns over a websocket connection. Each
// CHAT frame is handled like a POST to the chat endpoint; replies are sent
// back on the same connection in the order the frames arrived.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// ChatHandler runs one chat turn for a user. *service.ChatService satisfies it.
type ChatHandler interface {
	Chat(ctx context.Context, ownerID uuid.UUID, input service.ChatInput) (*service.ChatResult, error)
}

type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
	chat   ChatHandler
	ctx    context.Context
	cancel context.CancelFunc

	// closed when the write pump exits
	writerDone chan struct{}
}

func NewClient(conn *websocket.Conn, userID uuid.UUID, chat ChatHandler) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		conn:   conn,
		send:   make(chan []byte, 16),
		userID: userID,
		chat:   chat,
		ctx:    ctx,
		cancel: cancel,

		writerDone: make(chan struct{}),
	}
}

// Serve runs the write pump in the background and the read pump on the
// calling goroutine. It returns when the connection closes.
func (c *Client) Serve() {
	go c.WritePump()
	c.ReadPump()
}

func (c *Client) ReadPump() {
	defer func() {
		c.cancel()
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ERROR [websocket.ReadPump] user %s: %v", c.userID, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Invalid message")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.writerDone)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeChat:
		var payload ChatPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError(ErrCodeInvalidPayload, "Invalid chat payload")
			return
		}
		c.handleChat(payload)

	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type: "+string(msg.Type))
	}
}

func (c *Client) handleChat(payload ChatPayload) {
	input := service.ChatInput{Message: payload.Message}
	if payload.ConversationID != nil {
		id, err := uuid.Parse(*payload.ConversationID)
		if err != nil {
			c.sendError(ErrCodeInvalidPayload, "Invalid conversation id")
			return
		}
		input.ConversationID = &id
	}

	result, err := c.chat.Chat(c.ctx, c.userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.sendError(ErrCodeInvalidPayload, "Message must not be empty")
		case errors.Is(err, domain.ErrConversationNotFound):
			c.sendError(ErrCodeConversationNotFound, "Conversation not found")
		default:
			log.Printf("ERROR [websocket.handleChat] user %s: %v", c.userID, err)
			c.sendError(ErrCodeInternal, "Internal server error")
		}
		return
	}

	c.sendMessage(MessageTypeChatReply, ChatReplyPayload{
		Response:       result.Response,
		ConversationID: result.ConversationID.String(),
	})
}

func (c *Client) sendMessage(msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		log.Printf("ERROR [websocket.sendMessage] failed to encode %s: %v", msgType, err)
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR [websocket.sendMessage] failed to encode %s: %v", msgType, err)
		return
	}

	select {
	case c.send <- data:
	case <-c.writerDone:
	}
}

func (c *Client) sendError(code, message string) {
	c.sendMessage(MessageTypeError, ErrorPayload{Code: code, Message: message})
}
