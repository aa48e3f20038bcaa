package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetOwned matches on both id and owner; see the TaskRepository contract.
func (r *taskRepository) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// UpdateOwned writes only the columns present in patch. An empty patch
// returns the stored task unchanged.
func (r *taskRepository) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	columns := patch.Columns()
	if len(columns) == 0 {
		return r.GetOwned(ctx, ownerID, id)
	}
	return r.updateOwned(ctx, ownerID, id, columns)
}

// ToggleOwned flips completed in the database, so concurrent toggles never
// collapse into one.
func (r *taskRepository) ToggleOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return r.updateOwned(ctx, ownerID, id, map[string]interface{}{
		"completed": gorm.Expr("NOT completed"),
	})
}

func (r *taskRepository) updateOwned(ctx context.Context, ownerID, id uuid.UUID, columns map[string]interface{}) (*domain.Task, error) {
	columns["updated_at"] = time.Now()

	var task domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Task{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTaskNotFound
		}
		return tx.First(&task, "id = ? AND user_id = ?", id, ownerID).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
