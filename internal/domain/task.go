package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User        *User     `json:"-" gorm:"foreignKey:UserID"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null;default:''"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	Category    *string   `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch carries the fields of a partial update. A nil field is left
// untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Category    *string
}

// Columns maps the present fields to their column names. An empty map
// means the patch changes nothing.
func (p TaskPatch) Columns() map[string]interface{} {
	columns := make(map[string]interface{})
	if p.Title != nil {
		columns["title"] = *p.Title
	}
	if p.Description != nil {
		columns["description"] = *p.Description
	}
	if p.Completed != nil {
		columns["completed"] = *p.Completed
	}
	if p.Category != nil {
		columns["category"] = *p.Category
	}
	return columns
}
