package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dom/taskchat-backend/internal/auth"
	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
)

const TokenTypeBearer = "bearer"

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
}

func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

type SignInInput struct {
	Email    string
	Password string
}

type TokenResult struct {
	AccessToken string
	TokenType   string
}

// NormalizeEmail is applied on every write and lookup so addresses compare
// case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent sign-up for the same address.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	log.Printf("INFO [service.SignUp] created user %s", user.ID)
	return user, nil
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*TokenResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh issues a fresh token for an already authenticated user.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User) (*TokenResult, error) {
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*TokenResult, error) {
	token, err := s.tokens.Issue(user.ID.String(), 0)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &TokenResult{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// Authenticate resolves a bearer token to its user. Every failure (bad
// signature, expiry, unknown subject) is reported as ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	subject, err := s.tokens.Validate(token)
	if err != nil {
		log.Printf("INFO [service.Authenticate] rejected token: %v", err)
		return nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
