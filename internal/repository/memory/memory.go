// Package memory keeps tasks and users in process memory. It backs
// STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
)

type Store struct {
	mu        sync.RWMutex
	tasks     map[string]models.Task
	taskOrder []string
	users     map[string]models.User
}

func New() *Store {
	return &Store{
		tasks: make(map[string]models.Task),
		users: make(map[string]models.User),
	}
}

func (s *Store) Tasks() repository.TaskRepository { return taskRepository{s} }
func (s *Store) Users() repository.UserRepository { return userRepository{s} }

func (s *Store) Ping(context.Context) error { return nil }

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type taskRepository struct{ s *Store }

func (r taskRepository) ListByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, id := range r.s.taskOrder {
		task := r.s.tasks[id]
		if task.UserID == userID {
			tasks = append(tasks, cloneTask(task))
		}
	}
	return tasks, nil
}

func (r taskRepository) GetByID(_ context.Context, id string) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r taskRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	stored := *cloneTask(*task)
	stored.ID = id

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tasks[id] = stored
	r.s.taskOrder = append(r.s.taskOrder, id)
	return cloneTask(stored), nil
}

func (r taskRepository) Replace(_ context.Context, id string, params repository.ReplaceTaskParams) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}

	task.Title = params.Title
	task.Description = params.Description
	task.Priority = params.Priority
	task.DueDate = cloneTime(params.DueDate)
	if params.Completed != nil {
		task.Completed = *params.Completed
	}
	task.UpdatedAt = params.UpdatedAt

	r.s.tasks[id] = task
	return cloneTask(task), nil
}

func (r taskRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	r.s.taskOrder = slices.DeleteFunc(r.s.taskOrder, func(v string) bool { return v == id })
	return nil
}

type userRepository struct{ s *Store }

func (r userRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTakenLocked(user.Email, "") {
		return nil, repository.ErrEmailTaken
	}

	stored := *user
	stored.ID = id
	r.s.users[id] = stored
	return &stored, nil
}

func (r userRepository) Update(_ context.Context, id string, params repository.UpdateUserParams) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if r.s.emailTakenLocked(params.Email, id) {
		return nil, repository.ErrEmailTaken
	}

	user.Name = params.Name
	user.Email = params.Email
	user.PasswordHash = params.PasswordHash
	user.UpdatedAt = params.UpdatedAt
	r.s.users[id] = user
	return &user, nil
}

func (r userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r userRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (s *Store) emailTakenLocked(email, exceptID string) bool {
	for id, user := range s.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

func cloneTask(task models.Task) *models.Task {
	task.DueDate = cloneTime(task.DueDate)
	return &task
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
