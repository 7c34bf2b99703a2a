package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterHashesPassword(t *testing.T) {
	s := newTestServices(t)

	user, err := s.users.Register(context.Background(), RegisterParams{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected user ID to be set")
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		params RegisterParams
	}{
		{name: "missing name", params: RegisterParams{Email: "a@example.com", Password: "secret"}},
		{name: "missing email", params: RegisterParams{Name: "Ada", Password: "secret"}},
		{name: "missing password", params: RegisterParams{Name: "Ada", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)

			_, err := s.users.Register(context.Background(), tt.params)
			requireValidationError(t, err, msgUserRequired)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	params := RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"}
	_, err := s.users.Register(ctx, params)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	params.Name = "Impostor"
	_, err = s.users.Register(ctx, params)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := s.users.UpdateUser(ctx, UpdateUserParams{
		ID: user.ID,
		RegisterParams: RegisterParams{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Password: "secret",
		},
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "Ada Lovelace" {
		t.Fatalf("expected new name, got %q", updated.Name)
	}
	if updated.PasswordHash == user.PasswordHash {
		t.Fatalf("expected password to be re-hashed")
	}

	_, err = s.users.UpdateUser(ctx, UpdateUserParams{
		ID:             user.ID,
		RegisterParams: RegisterParams{Name: "Ada"},
	})
	requireValidationError(t, err, msgUserRequired)

	_, err = s.users.UpdateUser(ctx, UpdateUserParams{
		ID:             "missing",
		RegisterParams: RegisterParams{Name: "Ada", Email: "x@example.com", Password: "secret"},
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserEmailTaken(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.users.Register(ctx, RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register ada: %v", err)
	}
	bob, err := s.users.Register(ctx, RegisterParams{Name: "Bob", Email: "bob@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	_, err = s.users.UpdateUser(ctx, UpdateUserParams{
		ID:             bob.ID,
		RegisterParams: RegisterParams{Name: "Bob", Email: "ada@example.com", Password: "secret"},
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestDeleteUserKeepsTasks(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err = s.tasks.CreateTask(ctx, CreateTaskParams{UserID: user.ID, Title: "orphan"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	err = s.users.DeleteUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}
	err = s.users.DeleteUser(ctx, user.ID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}

	tasks, err := s.tasks.ListTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected orphaned task to remain, got %d", len(tasks))
	}
}
