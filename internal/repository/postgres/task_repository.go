package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
)

type taskRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) repository.TaskRepository {
	return &taskRepositoryImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *taskRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       description,
       completed,
       priority,
       due_date,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := r.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		var priority string
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&priority,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		task.Priority = models.Priority(priority)
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{ID: id}
	var priority string

	const selectTaskByIDQuery = `
SELECT user_id,
       title,
       description,
       completed,
       priority,
       due_date,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to select task by id")
		return nil, err
	}
	task.Priority = models.Priority(priority)
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("selected task by id")
	return task, nil
}

func (r *taskRepositoryImpl) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	taskUUID, err := uuid.NewV7()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	created := *task
	created.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   completed,
                   priority,
                   due_date,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err = r.pgPool.Exec(
		ctx,
		insertTaskQuery,
		created.ID,
		created.UserID,
		created.Title,
		created.Description,
		created.Completed,
		string(created.Priority),
		created.DueDate,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", created.UserID).
			Msg("failed to insert task")
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", created.ID).
		Msg("inserted task")
	return &created, nil
}

func (r *taskRepositoryImpl) Replace(ctx context.Context, id string, params repository.ReplaceTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:          id,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		UpdatedAt:   params.UpdatedAt,
	}

	// completed is kept unless the caller supplied a value.
	const replaceTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    priority = $3,
    due_date = $4,
    completed = COALESCE($5, completed),
    updated_at = $6
WHERE id = $7
RETURNING user_id, completed, created_at
`
	err := r.pgPool.QueryRow(
		ctx,
		replaceTaskQuery,
		task.Title,
		task.Description,
		string(task.Priority),
		task.DueDate,
		params.Completed,
		task.UpdatedAt,
		task.ID,
	).Scan(
		&task.UserID,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrTaskNotFound
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}
