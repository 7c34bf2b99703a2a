package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository/memory"
	"github.com/adanyl0v/taskpad/internal/security"
)

type fakeGenerator struct {
	prompts []string
	text    string
	err     error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

type testServices struct {
	tasks     TaskService
	users     UserService
	auth      AuthService
	summary   SummaryService
	generator *fakeGenerator
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	logger := zerolog.Nop()
	store := memory.New()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	generator := &fakeGenerator{text: "You have things to do."}

	return testServices{
		tasks:     NewTaskService(logger, store.Tasks()),
		users:     NewUserService(logger, store.Users(), hasher),
		auth:      NewAuthService(logger, store.Users(), hasher, "taskpad-test", []byte("test-key"), time.Hour),
		summary:   NewSummaryService(logger, store.Tasks(), generator),
		generator: generator,
	}
}

func requireValidationError(t *testing.T, err error, message string) *ValidationError {
	t.Helper()

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, validationErr.Message)
	}
	return validationErr
}

func boolPtr(v bool) *bool { return &v }

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	created, err := s.tasks.CreateTask(ctx, CreateTaskParams{
		UserID: "u1",
		Title:  "  Buy milk  ",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected task ID to be set")
	}

	task, err := s.tasks.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if task.Title != "Buy milk" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Description != "" {
		t.Fatalf("expected empty description, got %q", task.Description)
	}
	if task.Completed {
		t.Fatalf("expected new task to be incomplete")
	}
	if task.Priority != models.PriorityLow {
		t.Fatalf("expected priority low, got %q", task.Priority)
	}
	if task.DueDate != nil {
		t.Fatalf("expected no due date, got %v", task.DueDate)
	}
	if task.CreatedAt.IsZero() || !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v and %v", task.CreatedAt, task.UpdatedAt)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateTaskParams
		message string
	}{
		{
			name:    "missing title",
			params:  CreateTaskParams{UserID: "u1"},
			message: msgTaskRequired,
		},
		{
			name:    "blank title",
			params:  CreateTaskParams{UserID: "u1", Title: "   "},
			message: msgTaskRequired,
		},
		{
			name:    "missing user",
			params:  CreateTaskParams{Title: "Buy milk"},
			message: msgTaskRequired,
		},
		{
			name:    "title too long",
			params:  CreateTaskParams{UserID: "u1", Title: strings.Repeat("a", 201)},
			message: msgInvalidTaskBody,
		},
		{
			name:    "description too long",
			params:  CreateTaskParams{UserID: "u1", Title: "Buy milk", Description: strings.Repeat("a", 2001)},
			message: msgInvalidTaskBody,
		},
		{
			name:    "unknown priority",
			params:  CreateTaskParams{UserID: "u1", Title: "Buy milk", Priority: "urgent"},
			message: msgInvalidTaskBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)

			_, err := s.tasks.CreateTask(context.Background(), tt.params)
			requireValidationError(t, err, tt.message)

			tasks, err := s.tasks.ListTasks(context.Background(), "u1")
			if err != nil {
				t.Fatalf("list tasks: %v", err)
			}
			if len(tasks) != 0 {
				t.Fatalf("expected nothing stored, got %d tasks", len(tasks))
			}
		})
	}
}

func TestCreateTaskTitleBoundary(t *testing.T) {
	s := newTestServices(t)

	_, err := s.tasks.CreateTask(context.Background(), CreateTaskParams{
		UserID: "u1",
		Title:  strings.Repeat("é", 200),
	})
	if err != nil {
		t.Fatalf("expected 200 characters to be accepted, got %v", err)
	}
}

func TestUpdateTaskFullReplace(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	created, err := s.tasks.CreateTask(ctx, CreateTaskParams{
		UserID:      "u1",
		Title:       "Buy milk",
		Description: "two litres",
		Priority:    models.PriorityHigh,
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	completed, err := s.tasks.UpdateTask(ctx, UpdateTaskParams{
		ID:          created.ID,
		Title:       "Buy milk",
		Description: "two litres",
		Priority:    models.PriorityHigh,
		DueDate:     &due,
		Completed:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if !completed.Completed {
		t.Fatalf("expected task to be completed")
	}

	updated, err := s.tasks.UpdateTask(ctx, UpdateTaskParams{
		ID:    created.ID,
		Title: "Buy oat milk",
	})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "Buy oat milk" {
		t.Fatalf("expected new title, got %q", updated.Title)
	}
	if updated.Description != "" {
		t.Fatalf("expected omitted description to be erased, got %q", updated.Description)
	}
	if updated.Priority != models.PriorityLow {
		t.Fatalf("expected omitted priority to reset to low, got %q", updated.Priority)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected omitted due date to be cleared, got %v", updated.DueDate)
	}
	if !updated.Completed {
		t.Fatalf("expected omitted completed to keep its value")
	}
	if updated.UserID != "u1" {
		t.Fatalf("expected owner to be kept, got %q", updated.UserID)
	}

	reopened, err := s.tasks.UpdateTask(ctx, UpdateTaskParams{
		ID:        created.ID,
		Title:     "Buy oat milk",
		Completed: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("reopen task: %v", err)
	}
	if reopened.Completed {
		t.Fatalf("expected explicit false to be applied")
	}
}

func TestUpdateTaskErrors(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.tasks.UpdateTask(ctx, UpdateTaskParams{ID: "missing", Title: "x"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	_, err = s.tasks.UpdateTask(ctx, UpdateTaskParams{ID: "missing"})
	requireValidationError(t, err, msgTitleRequired)
}

func TestDeleteTaskTwice(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	created, err := s.tasks.CreateTask(ctx, CreateTaskParams{UserID: "u1", Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	err = s.tasks.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err = s.tasks.DeleteTask(ctx, created.ID)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on second delete, got %v", err)
	}
	_, err = s.tasks.GetTask(ctx, created.ID)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestListTasksScopedToUser(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for _, p := range []CreateTaskParams{
		{UserID: "a", Title: "first"},
		{UserID: "b", Title: "other"},
		{UserID: "a", Title: "second"},
	} {
		_, err := s.tasks.CreateTask(ctx, p)
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	tasks, err := s.tasks.ListTasks(ctx, "a")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != "a" {
			t.Fatalf("expected only tasks of a, got one of %q", task.UserID)
		}
	}
	if tasks[0].Title != "first" || tasks[1].Title != "second" {
		t.Fatalf("expected insertion order, got %q, %q", tasks[0].Title, tasks[1].Title)
	}

	none, err := s.tasks.ListTasks(ctx, "nobody")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", none)
	}
}

func TestCheckOwner(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	created, err := s.tasks.CreateTask(ctx, CreateTaskParams{UserID: "a", Title: "mine"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.tasks.CheckOwner(ctx, created.ID, "a"); err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}
	if err := s.tasks.CheckOwner(ctx, created.ID, "b"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := s.tasks.CheckOwner(ctx, "missing", "a"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
