package repository

import (
	"context"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TaskRepository lookups are always scoped by owner. A task that exists but
// belongs to someone else is reported as domain.ErrTaskNotFound. Writes are
// single conditional UPDATEs, so a task deleted concurrently stays deleted.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	ToggleOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Conversation, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Append(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*domain.Message, error)
}

// Transactor runs fn against repositories bound to a single transaction.
// Returning an error from fn rolls every write back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	User         UserRepository
	Task         TaskRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Tx           Transactor
}
