package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/taskflow/task-service/internal/core/domain"
	"github.com/taskflow/task-service/internal/core/ports"
)

type stubTaskRepo struct {
	mu     sync.Mutex
	tasks  map[string]*domain.Task
	nextID int
	last   ports.ListTasksFilter
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c := *t
	c.ID = fmt.Sprintf("task-%d", r.nextID)
	r.tasks[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTaskRepo) FindByUserID(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) List(ctx context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	r.mu.Lock()
	r.last = f
	r.mu.Unlock()

	all, _ := r.FindByUserID(ctx, f.UserID)
	var matched []*domain.Task
	for _, t := range all {
		if f.Status == "" || t.Status == f.Status {
			matched = append(matched, t)
		}
	}
	start := f.Page * f.Size
	if start >= len(matched) {
		return nil, int64(len(matched)), nil
	}
	end := start + f.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (r *stubTaskRepo) Replace(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	c := *t
	r.tasks[t.ID] = &c
	out := c
	return &out, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

var (
	alice = domain.Identity{Subject: "alice", Roles: []domain.Role{domain.RoleUser}}
	bob   = domain.Identity{Subject: "bob", Roles: []domain.Role{domain.RoleUser}}
	due   = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
)

func validInput(title string) ports.TaskInput {
	return ports.TaskInput{Title: title, Description: "d", DueDate: due, Status: "TODO"}
}

func TestTaskService_CreateTask_SetsOwner(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	task, err := svc.CreateTask(context.Background(), alice, validInput("write report"))
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected generated id")
	}
	if task.UserID != "alice" {
		t.Fatalf("expected owner alice, got %q", task.UserID)
	}
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, alice, ports.TaskInput{Title: "  ", DueDate: due}); !errors.Is(err, domain.ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for blank title, got %v", err)
	}
	if _, err := svc.CreateTask(ctx, alice, ports.TaskInput{Title: "x"}); !errors.Is(err, domain.ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for missing due date, got %v", err)
	}
	if _, err := svc.CreateTask(ctx, domain.Identity{}, validInput("x")); err != domain.ErrAuthenticationRequired {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestTaskService_GetTask_HidesForeignTasks(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)
	ctx := context.Background()
	task, _ := svc.CreateTask(ctx, alice, validInput("mine"))

	if _, err := svc.GetTask(ctx, alice, task.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetTask(ctx, bob, task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for non-owner, got %v", err)
	}
	if _, err := svc.GetTask(ctx, alice, "missing"); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_TasksByUser(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)
	ctx := context.Background()
	_, _ = svc.CreateTask(ctx, alice, validInput("a1"))
	_, _ = svc.CreateTask(ctx, alice, validInput("a2"))
	_, _ = svc.CreateTask(ctx, bob, validInput("b1"))

	tasks, err := svc.TasksByUser(ctx, alice, "alice")
	if err != nil {
		t.Fatalf("TasksByUser returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if _, err := svc.TasksByUser(ctx, alice, "bob"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_UpdateTask_PreservesOwner(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	ctx := context.Background()
	task, _ := svc.CreateTask(ctx, alice, validInput("old"))

	updated, err := svc.UpdateTask(ctx, alice, task.ID, ports.TaskInput{Title: "new", DueDate: due, Status: "DONE"})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}
	if updated.Title != "new" || updated.Status != "DONE" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.UserID != "alice" || updated.ID != task.ID {
		t.Fatalf("owner or id changed: %+v", updated)
	}

	if _, err := svc.UpdateTask(ctx, bob, task.ID, validInput("hijack")); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for non-owner update, got %v", err)
	}
	stored, _ := repo.FindByID(ctx, task.ID)
	if stored.Title != "new" {
		t.Fatalf("non-owner update must not modify the task")
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)
	ctx := context.Background()
	task, _ := svc.CreateTask(ctx, alice, validInput("tmp"))

	if err := svc.DeleteTask(ctx, bob, task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for non-owner delete, got %v", err)
	}
	if err := svc.DeleteTask(ctx, alice, task.ID); err != nil {
		t.Fatalf("DeleteTask returned error: %v", err)
	}
	if _, err := svc.GetTask(ctx, alice, task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected task to be gone, got %v", err)
	}
}

func TestTaskService_ListTasks_Paging(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		in := validInput(fmt.Sprintf("t%d", i))
		if i%2 == 0 {
			in.Status = "DONE"
		}
		_, _ = svc.CreateTask(ctx, alice, in)
	}
	_, _ = svc.CreateTask(ctx, bob, validInput("other"))

	page, err := svc.ListTasks(ctx, alice, ports.ListTasksInput{Page: 1, Size: 2, Sort: "title"})
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d pages=%d items=%d", page.Total, page.TotalPages, len(page.Items))
	}
	if repo.last.SortBy != "title" || repo.last.UserID != "alice" {
		t.Fatalf("unexpected filter: %+v", repo.last)
	}

	done, err := svc.ListTasks(ctx, alice, ports.ListTasksInput{Status: "DONE"})
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if done.Total != 3 {
		t.Fatalf("expected 3 DONE tasks, got %d", done.Total)
	}
}

func TestTaskService_ListTasks_Defaults(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)

	page, err := svc.ListTasks(context.Background(), alice, ports.ListTasksInput{Page: -3, Size: 1000, Sort: "password"})
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if page.Page != 0 || page.Size != maxPageSize {
		t.Fatalf("expected clamped paging, got page=%d size=%d", page.Page, page.Size)
	}
	if repo.last.SortBy != defaultSort {
		t.Fatalf("expected default sort, got %q", repo.last.SortBy)
	}
	if page.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", page.TotalPages)
	}
}
