package handler

import (
	"time"

	"github.com/taskflow/task-service/internal/core/domain"
	"github.com/taskflow/task-service/internal/core/ports"
)

type taskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	DueDate     string `json:"dueDate"     validate:"required,duedate"`
	Status      string `json:"status"      validate:"max=50"`
}

type taskResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// taskPageResponse mirrors the page shape clients of the task API expect.
type taskPageResponse struct {
	Content       []taskResponse `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
}

func parseDueDate(s string) (time.Time, error) {
	return time.Parse(domain.DueDateLayout, s)
}

// toTaskInput assumes req has passed validation.
func toTaskInput(req taskRequest) ports.TaskInput {
	due, _ := parseDueDate(req.DueDate)
	return ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      req.Status,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format(domain.DueDateLayout),
		Status:      t.Status,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
