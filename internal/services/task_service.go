package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
)

const (
	msgTaskRequired    = "title and userId are required"
	msgTitleRequired   = "title required"
	msgInvalidTaskBody = "invalid task"
)

type taskServiceImpl struct {
	logger   zerolog.Logger
	tasks    repository.TaskRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger:   logger,
		tasks:    tasks,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.tasks.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("tasks found")
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("task found")
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)
	params.UserID = strings.TrimSpace(params.UserID)

	err := validateStruct(s.validate, params, msgTaskRequired, msgInvalidTaskBody)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid create task params")
		return nil, err
	}

	now := s.now()
	task, err := s.tasks.Create(ctx, &models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Completed:   false,
		Priority:    priorityOrDefault(params.Priority),
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)

	err := validateStruct(s.validate, params, msgTitleRequired, msgInvalidTaskBody)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("invalid update task params")
		return nil, err
	}

	task, err := s.tasks.Replace(ctx, params.ID, repository.ReplaceTaskParams{
		Title:       params.Title,
		Description: params.Description,
		Priority:    priorityOrDefault(params.Priority),
		DueDate:     params.DueDate,
		Completed:   params.Completed,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Bool("completed", task.Completed).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) CheckOwner(ctx context.Context, taskID, userID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if task.UserID != userID {
		s.logger.Warn().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task belongs to another user")
		return ErrForbidden
	}
	return nil
}

func priorityOrDefault(p models.Priority) models.Priority {
	if p == "" {
		return models.DefaultPriority
	}
	return p
}
