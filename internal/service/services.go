package service

import (
	"github.com/dom/taskchat-backend/internal/auth"
	"github.com/dom/taskchat-backend/internal/config"
	"github.com/dom/taskchat-backend/internal/repository"
	"github.com/dom/taskchat-backend/internal/responder"
)

type Services struct {
	Auth *AuthService
	Task *TaskService
	Chat *ChatService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, r responder.Responder) *Services {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry)

	return &Services{
		Auth: NewAuthService(repos.User, hasher, tokens),
		Task: NewTaskService(repos.Task),
		Chat: NewChatService(repos, r),
	}
}
