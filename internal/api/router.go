package api

import (
	"net/http"

	"github.com/dom/taskchat-backend/internal/api/handlers"
	"github.com/dom/taskchat-backend/internal/api/middleware"
	"github.com/dom/taskchat-backend/internal/config"
	"github.com/dom/taskchat-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Todo + chat API is running"}`))
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	taskHandler := handlers.NewTaskHandler(services.Task)
	chatHandler := handlers.NewChatHandler(services.Chat)
	wsHandler := handlers.NewWebSocketHandler(services.Auth, services.Chat, cfg.AllowedOrigins)

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-in/credentials", authHandler.SignIn)
			r.Post("/sign-out", authHandler.SignOut)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/refresh", authHandler.Refresh)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/{user_id}", func(r chi.Router) {
			// Authenticates itself from the query string
			r.Get("/chat/ws", wsHandler.Handle)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Use(middleware.RequireOwner)

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", taskHandler.List)
					r.Post("/", taskHandler.Create)
					r.Get("/{task_id}", taskHandler.Get)
					r.Put("/{task_id}", taskHandler.Update)
					r.Delete("/{task_id}", taskHandler.Delete)
					r.Patch("/{task_id}/complete", taskHandler.ToggleComplete)
				})

				r.Post("/chat", chatHandler.Chat)

				r.Route("/conversations", func(r chi.Router) {
					r.Get("/", chatHandler.ListConversations)
					r.Get("/{conversation_id}/messages", chatHandler.ListMessages)
				})
			})
		})
	})

	return r
}
