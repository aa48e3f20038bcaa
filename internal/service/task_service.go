package service

import (
	"context"
	"time"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/repository"
	"github.com/google/uuid"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
	Category    *string
}

func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return s.taskRepo.GetOwned(ctx, ownerID, taskID)
}

// Update applies only the fields present in patch.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	return s.taskRepo.UpdateOwned(ctx, ownerID, taskID, patch)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	return s.taskRepo.DeleteOwned(ctx, ownerID, taskID)
}

func (s *TaskService) ToggleComplete(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return s.taskRepo.ToggleOwned(ctx, ownerID, taskID)
}
