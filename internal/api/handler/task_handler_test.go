package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-service/internal/api/middleware"
	"github.com/taskflow/task-service/internal/core/domain"
	"github.com/taskflow/task-service/internal/core/ports"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, who domain.Identity, in ports.ListTasksInput) (*ports.TaskPage, error)
	createFn func(ctx context.Context, who domain.Identity, in ports.TaskInput) (*domain.Task, error)
	getFn    func(ctx context.Context, who domain.Identity, id string) (*domain.Task, error)
	byUserFn func(ctx context.Context, who domain.Identity, userID string) ([]*domain.Task, error)
	updateFn func(ctx context.Context, who domain.Identity, id string, in ports.TaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, who domain.Identity, id string) error
}

func (s *stubTaskService) ListTasks(ctx context.Context, who domain.Identity, in ports.ListTasksInput) (*ports.TaskPage, error) {
	return s.listFn(ctx, who, in)
}

func (s *stubTaskService) CreateTask(ctx context.Context, who domain.Identity, in ports.TaskInput) (*domain.Task, error) {
	return s.createFn(ctx, who, in)
}

func (s *stubTaskService) GetTask(ctx context.Context, who domain.Identity, id string) (*domain.Task, error) {
	return s.getFn(ctx, who, id)
}

func (s *stubTaskService) TasksByUser(ctx context.Context, who domain.Identity, userID string) ([]*domain.Task, error) {
	return s.byUserFn(ctx, who, userID)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, who domain.Identity, id string, in ports.TaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, who, id, in)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, who domain.Identity, id string) error {
	return s.deleteFn(ctx, who, id)
}

var aliceIdentity = domain.Identity{Subject: "alice", Roles: []domain.Role{domain.RoleUser}}

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:      "t1",
		UserID:  "alice",
		Title:   "report",
		DueDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:  "TODO",
	}
}

func taskContext(e *echo.Echo, method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

func TestTaskHandler_Create(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, who domain.Identity, in ports.TaskInput) (*domain.Task, error) {
			if who.Subject != "alice" {
				t.Fatalf("unexpected caller %q", who.Subject)
			}
			if in.Title != "report" || in.DueDate.Format(domain.DueDateLayout) != "2026-06-01" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleTask(), nil
		},
	})

	c, rec := taskContext(e, http.MethodPost, "/api/task/create", `{"title":"report","dueDate":"2026-06-01","status":"TODO","userId":"mallory"}`, &aliceIdentity)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.UserID != "alice" || resp.DueDate != "2026-06-01" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTaskHandler_Create_InvalidDueDate(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, who domain.Identity, in ports.TaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	for _, body := range []string{`{"title":"x","dueDate":"01/06/2026"}`, `{"dueDate":"2026-06-01"}`} {
		c, rec := taskContext(e, http.MethodPost, "/api/task/create", body, &aliceIdentity)
		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestTaskHandler_RequiresIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c, rec := taskContext(e, http.MethodGet, "/api/task/get-all-tasks", "", nil)
	_ = handler.List(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTaskHandler_List(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		listFn: func(ctx context.Context, who domain.Identity, in ports.ListTasksInput) (*ports.TaskPage, error) {
			if in.Status != "DONE" || in.Page != 2 || in.Size != 5 || in.Sort != "title" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.TaskPage{Items: []*domain.Task{sampleTask()}, Total: 11, Page: 2, Size: 5, TotalPages: 3}, nil
		},
	})

	c, rec := taskContext(e, http.MethodGet, "/api/task/get-all-tasks?status=DONE&page=2&size=5&sort=title", "", &aliceIdentity)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp taskPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TotalElements != 11 || resp.TotalPages != 3 || resp.Number != 2 || len(resp.Content) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestTaskHandler_List_BadPage(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c, rec := taskContext(e, http.MethodGet, "/api/task/get-all-tasks?page=abc", "", &aliceIdentity)
	_ = handler.List(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Get_NotOwned(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		getFn: func(ctx context.Context, who domain.Identity, id string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	})

	c, rec := taskContext(e, http.MethodGet, "/api/task/getById/t9", "", &aliceIdentity)
	c.SetParamNames("id")
	c.SetParamValues("t9")
	_ = handler.Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaskHandler_ByUser(t *testing.T) {
	tests := []struct {
		name       string
		tasks      []*domain.Task
		err        error
		wantStatus int
	}{
		{"tasks", []*domain.Task{sampleTask()}, nil, http.StatusOK},
		{"empty", nil, nil, http.StatusNoContent},
		{"foreign user", nil, domain.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			handler := NewTaskHandler(&stubTaskService{
				byUserFn: func(ctx context.Context, who domain.Identity, userID string) ([]*domain.Task, error) {
					if userID != "alice" {
						t.Fatalf("unexpected userId %q", userID)
					}
					return tt.tasks, tt.err
				},
			})

			c, rec := taskContext(e, http.MethodGet, "/api/task/getByUserId/alice", "", &aliceIdentity)
			c.SetParamNames("userId")
			c.SetParamValues("alice")
			_ = handler.ByUser(c)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		updateFn: func(ctx context.Context, who domain.Identity, id string, in ports.TaskInput) (*domain.Task, error) {
			if id != "t1" || in.Title != "renamed" {
				t.Fatalf("unexpected update %s %+v", id, in)
			}
			task := sampleTask()
			task.Title = in.Title
			return task, nil
		},
	})

	c, rec := taskContext(e, http.MethodPut, "/api/task/update-task/t1", `{"title":"renamed","dueDate":"2026-06-01"}`, &aliceIdentity)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	handler := NewTaskHandler(&stubTaskService{
		deleteFn: func(ctx context.Context, who domain.Identity, id string) error {
			deleted = id
			return nil
		},
	})

	c, rec := taskContext(e, http.MethodDelete, "/api/task/delete-task/t1", "", &aliceIdentity)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "t1" {
		t.Fatalf("expected 204 for t1, got %d for %q", rec.Code, deleted)
	}
}
