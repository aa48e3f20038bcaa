package handlers

import (
	"net/http"

	"github.com/dom/taskchat-backend/internal/service"
	"github.com/google/uuid"
)

const conversationIDParam = "conversation_id"

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	Message        string  `json:"message" validate:"required,max=32768"`
	ConversationID *string `json:"conversation_id"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req ChatRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	input := service.ChatInput{Message: req.Message}
	if req.ConversationID != nil {
		id, err := uuid.Parse(*req.ConversationID)
		if err != nil {
			http.Error(w, "conversation_id must be a valid id", http.StatusBadRequest)
			return
		}
		input.ConversationID = &id
	}

	result, err := h.chatService.Chat(r.Context(), owner, input)
	if err != nil {
		writeError(w, "ChatHandler.Chat", err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:       result.Response,
		ConversationID: result.ConversationID.String(),
	})
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	conversations, err := h.chatService.ListConversations(r.Context(), owner)
	if err != nil {
		writeError(w, "ChatHandler.ListConversations", err)
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	conversationID, ok := pathID(w, r, conversationIDParam, "Conversation not found")
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), owner, conversationID)
	if err != nil {
		writeError(w, "ChatHandler.ListMessages", err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
