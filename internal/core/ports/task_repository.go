package ports

import (
	"context"

	"github.com/taskflow/task-service/internal/core/domain"
)

// ListTasksFilter carries the query for a page of one owner's tasks.
type ListTasksFilter struct {
	UserID string // always set by the service from the caller's identity
	Status string // optional
	Page   int    // 0-based
	Size   int
	SortBy string // bson field name
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Task, error)
	// List returns a page of tasks matching filter and the total count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	Replace(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
