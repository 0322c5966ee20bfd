package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTask  = errors.New("invalid task")
	ErrForbidden    = errors.New("access forbidden")
)

// DueDateLayout is the calendar-date format used for task due dates.
const DueDateLayout = "2006-01-02"

// Task is a unit of work owned by a single user. UserID holds the owner's
// username, which is the subject of that user's session tokens.
type Task struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"userId" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	DueDate     time.Time `json:"dueDate" bson:"due_date"`
	Status      string    `json:"status" bson:"status"`
}
