package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
)

var (
	ErrTaskNotFound       = repository.ErrTaskNotFound
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrUserAlreadyExists  = repository.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrForbidden          = errors.New("resource belongs to another user")
)

type TaskService interface {
	// ListTasks returns every task owned by userID. An unknown user
	// yields an empty slice.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// GetTask returns ErrTaskNotFound if the id does not resolve.
	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// CreateTask validates the params, applies the defaults and stores
	// a new incomplete task.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask replaces the task's title, description, priority and
	// due date, resetting omitted ones to their defaults. Completed is
	// changed only when params.Completed is set.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	DeleteTask(ctx context.Context, taskID string) error

	// CheckOwner returns ErrForbidden if the task belongs to a user
	// other than userID.
	CheckOwner(ctx context.Context, taskID, userID string) error
}

type UserService interface {
	// Register hashes the password and stores a new user. It returns
	// ErrUserAlreadyExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// UpdateUser replaces name, email and password. The password is
	// always re-hashed.
	UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error)

	// DeleteUser removes the account and leaves its tasks in place.
	DeleteUser(ctx context.Context, userID string) error
}

type AuthService interface {
	// Authenticate checks the credentials and issues an access token.
	//
	// It returns ErrInvalidCredentials both for an unknown email and for
	// a wrong password.
	Authenticate(ctx context.Context, params AuthenticateParams) (*AuthResult, error)

	// ParseAccessToken returns the user id the token was issued to, or
	// an error wrapping ErrInvalidToken.
	ParseAccessToken(token string) (string, error)
}

type SummaryService interface {
	// GenerateSummary asks the generator to summarize the user's tasks.
	// An empty task list still produces a call.
	GenerateSummary(ctx context.Context, userID string) (string, error)
}

type CreateTaskParams struct {
	UserID      string          `validate:"required"`
	Title       string          `validate:"required,max=200"`
	Description string          `validate:"max=2000"`
	Priority    models.Priority `validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time
}

type UpdateTaskParams struct {
	ID          string          `validate:"required"`
	Title       string          `validate:"required,max=200"`
	Description string          `validate:"max=2000"`
	Priority    models.Priority `validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time
	Completed   *bool
}

type RegisterParams struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,max=255"`
	Password string `validate:"required,max=255"`
}

type UpdateUserParams struct {
	ID string `validate:"required"`
	RegisterParams
}

type AuthenticateParams struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type AuthResult struct {
	UserID               string
	AccessToken          string
	AccessTokenExpiresAt time.Time
}
