package handlers

import (
	"net/http"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/service"
)

const taskIDParam = "task_id"

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=10000"`
	Completed   bool    `json:"completed"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

// UpdateTaskRequest fields are optional; only those present in the body
// are applied.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Completed   *bool   `json:"completed"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(r.Context(), owner)
	if err != nil {
		writeError(w, "TaskHandler.List", err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.Create(r.Context(), owner, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, "TaskHandler.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, taskIDParam, "Task not found")
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), owner, taskID)
	if err != nil {
		writeError(w, "TaskHandler.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, taskIDParam, "Task not found")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), owner, taskID, domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, "TaskHandler.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, taskIDParam, "Task not found")
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), owner, taskID); err != nil {
		writeError(w, "TaskHandler.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, taskIDParam, "Task not found")
	if !ok {
		return
	}

	task, err := h.taskService.ToggleComplete(r.Context(), owner, taskID)
	if err != nil {
		writeError(w, "TaskHandler.ToggleComplete", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}
