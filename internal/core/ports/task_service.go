package ports

import (
	"context"
	"time"

	"github.com/taskflow/task-service/internal/core/domain"
)

// TaskInput carries the user-editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      string
}

// ListTasksInput carries the list endpoint parameters.
type ListTasksInput struct {
	Status string
	Page   int
	Size   int
	Sort   string
}

// TaskPage is one page of the caller's tasks.
type TaskPage struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// TaskService defines task use cases. Every call is scoped to the identity
// supplied by the caller; ownership is enforced inside the service.
type TaskService interface {
	ListTasks(ctx context.Context, who domain.Identity, input ListTasksInput) (*TaskPage, error)
	CreateTask(ctx context.Context, who domain.Identity, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, who domain.Identity, id string) (*domain.Task, error)
	TasksByUser(ctx context.Context, who domain.Identity, userID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, who domain.Identity, id string, input TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, who domain.Identity, id string) error
}
