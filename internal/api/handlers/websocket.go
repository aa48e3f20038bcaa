package handlers

import (
	"log"
	"net/http"

	"github.com/dom/taskchat-backend/internal/api/middleware"
	"github.com/dom/taskchat-backend/internal/service"
	"github.com/dom/taskchat-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	authService *service.AuthService
	chatService *service.ChatService
	upgrader    ws.Upgrader
}

func NewWebSocketHandler(authService *service.AuthService, chatService *service.ChatService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		authService: authService,
		chatService: chatService,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(allowedOrigins, origin)
			},
		},
	}
}

// Handle authenticates with the token query parameter (browsers cannot set
// headers on a websocket handshake), falling back to the Authorization
// header, then upgrades and serves chat turns until the client disconnects.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = middleware.BearerToken(r)
	}
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, "WebSocketHandler.Handle", err)
		return
	}

	pathID, err := uuid.Parse(chi.URLParam(r, middleware.UserIDParam))
	if err != nil || pathID != user.ID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [handlers.WebSocket] upgrade failed: %v", err)
		return
	}

	go websocket.NewClient(conn, user.ID, h.chatService).Serve()
}
