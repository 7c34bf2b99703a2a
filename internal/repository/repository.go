// Package repository declares the storage contracts the services depend on.
// Backends live in the subpackages and must translate their driver errors
// into the sentinels below.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/taskpad/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

type TaskRepository interface {
	// ListByUserID returns the tasks owned by userID in store order.
	ListByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// GetByID returns ErrTaskNotFound if the id does not resolve.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// Create assigns the id and returns the stored task.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// Replace overwrites every field of ReplaceTaskParams except Completed,
	// which is written only when non-nil.
	Replace(ctx context.Context, id string, params ReplaceTaskParams) (*models.Task, error)

	Delete(ctx context.Context, id string) error
}

type ReplaceTaskParams struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	Completed   *bool
	UpdatedAt   time.Time
}

type UserRepository interface {
	// Create returns ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// Update returns ErrUserNotFound or ErrEmailTaken.
	Update(ctx context.Context, id string, params UpdateUserParams) (*models.User, error)

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type UpdateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	UpdatedAt    time.Time
}

// Pinger is implemented by backends that hold a connection worth checking.
type Pinger interface {
	Ping(ctx context.Context) error
}
