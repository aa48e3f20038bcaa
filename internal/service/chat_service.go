package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/repository"
	"github.com/dom/taskchat-backend/internal/responder"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrEmptyMessage = errors.New("message must not be empty")

type ChatService struct {
	repos     *repository.Repositories
	responder responder.Responder
}

func NewChatService(repos *repository.Repositories, r responder.Responder) *ChatService {
	return &ChatService{
		repos:     repos,
		responder: r,
	}
}

type ChatInput struct {
	Message        string
	ConversationID *uuid.UUID
}

type ChatResult struct {
	Response       string
	ConversationID uuid.UUID
}

// Chat runs one turn: record the user's message, ask the responder, record
// the reply. The two writes are separate transactions so no transaction is
// held open across the responder call. If the second write fails the user's
// message stays recorded without a reply.
func (s *ChatService) Chat(ctx context.Context, ownerID uuid.UUID, input ChatInput) (*ChatResult, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrEmptyMessage
	}

	var conversationID uuid.UUID
	err := s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		conversation, err := s.resolveConversation(ctx, tx, ownerID, input.ConversationID)
		if err != nil {
			return err
		}
		conversationID = conversation.ID

		return tx.Message.Append(ctx, &domain.Message{
			ID:             uuid.New(),
			ConversationID: conversation.ID,
			Role:           domain.MessageRoleUser,
			Content:        input.Message,
			CreatedAt:      time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	reply := s.responder.Respond(ctx, input.Message)

	err = s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Message.Append(ctx, &domain.Message{
			ID:             uuid.New(),
			ConversationID: conversationID,
			Role:           domain.MessageRoleAssistant,
			Content:        reply,
			CreatedAt:      time.Now(),
		}); err != nil {
			return err
		}
		return tx.Conversation.Touch(ctx, conversationID)
	})
	if err != nil {
		log.Printf("ERROR [service.Chat] failed to store reply for conversation %s: %v", conversationID, err)
		return nil, err
	}

	return &ChatResult{Response: reply, ConversationID: conversationID}, nil
}

func (s *ChatService) resolveConversation(ctx context.Context, tx *repository.Repositories, ownerID uuid.UUID, id *uuid.UUID) (*domain.Conversation, error) {
	if id != nil {
		return tx.Conversation.GetOwned(ctx, ownerID, *id)
	}

	metadata, err := json.Marshal(domain.ConversationMetadata{Responder: responder.NameOf(s.responder)})
	if err != nil {
		return nil, fmt.Errorf("encode conversation metadata: %w", err)
	}

	now := time.Now()
	conversation := &domain.Conversation{
		ID:        uuid.New(),
		UserID:    ownerID,
		Metadata:  datatypes.JSON(metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Conversation.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *ChatService) ListConversations(ctx context.Context, ownerID uuid.UUID) ([]*domain.Conversation, error) {
	return s.repos.Conversation.ListByOwner(ctx, ownerID)
}

// ListMessages returns a conversation's messages oldest first.
func (s *ChatService) ListMessages(ctx context.Context, ownerID, conversationID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.repos.Conversation.GetOwned(ctx, ownerID, conversationID); err != nil {
		return nil, err
	}
	return s.repos.Message.ListByConversation(ctx, conversationID)
}
