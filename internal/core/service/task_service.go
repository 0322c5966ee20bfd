package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-service/internal/core/domain"
	"github.com/taskflow/task-service/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSort     = "due_date"
)

// sortFields maps accepted sort keys to stored field names.
var sortFields = map[string]string{
	"dueDate": "due_date",
	"title":   "title",
	"status":  "status",
}

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// ListTasks returns a page of the caller's own tasks, optionally filtered by status.
func (s *TaskService) ListTasks(ctx context.Context, who domain.Identity, in ports.ListTasksInput) (*ports.TaskPage, error) {
	if who.Subject == "" {
		return nil, domain.ErrAuthenticationRequired
	}

	page := in.Page
	if page < 0 {
		page = 0
	}
	size := in.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	sortBy, ok := sortFields[in.Sort]
	if !ok {
		sortBy = defaultSort
	}

	items, total, err := s.repo.List(ctx, ports.ListTasksFilter{
		UserID: who.Subject,
		Status: in.Status,
		Page:   page,
		Size:   size,
		SortBy: sortBy,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(items) == 0 {
		s.logger.Debug().Str("user", who.Subject).Int("page", page).Msg("no tasks on page")
	}

	return &ports.TaskPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// CreateTask stores a task owned by the caller. Title and due date are required.
func (s *TaskService) CreateTask(ctx context.Context, who domain.Identity, in ports.TaskInput) (*domain.Task, error) {
	if who.Subject == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	if err := validateTask(in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Task{
		UserID:      who.Subject,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Str("task_id", created.ID).Str("user", who.Subject).Msg("task created")
	return created, nil
}

// GetTask returns the task only when the caller owns it. A foreign task is
// reported as not found.
func (s *TaskService) GetTask(ctx context.Context, who domain.Identity, id string) (*domain.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.Owns(t.UserID) {
		s.logger.Warn().Str("task_id", id).Str("user", who.Subject).Msg("task access by non-owner")
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

// TasksByUser lists every task of userID, which must be the caller.
func (s *TaskService) TasksByUser(ctx context.Context, who domain.Identity, userID string) ([]*domain.Task, error) {
	if !who.Owns(userID) {
		return nil, domain.ErrForbidden
	}
	tasks, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tasks by user: %w", err)
	}
	return tasks, nil
}

// UpdateTask replaces the editable fields of an owned task. The owner never changes.
func (s *TaskService) UpdateTask(ctx context.Context, who domain.Identity, id string, in ports.TaskInput) (*domain.Task, error) {
	existing, err := s.GetTask(ctx, who, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, &domain.Task{
		ID:          existing.ID,
		UserID:      existing.UserID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info().Str("task_id", id).Msg("task updated")
	return updated, nil
}

// DeleteTask removes an owned task.
func (s *TaskService) DeleteTask(ctx context.Context, who domain.Identity, id string) error {
	if _, err := s.GetTask(ctx, who, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func validateTask(in ports.TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidTask)
	}
	if in.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", domain.ErrInvalidTask)
	}
	return nil
}
