package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
)

type userRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) repository.UserRepository {
	return &userRepositoryImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *models.User) (*models.User, error) {
	userUUID, err := uuid.NewV7()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}

	created := *user
	created.ID = userUUID.String()

	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err = r.pgPool.Exec(
		ctx,
		insertUserQuery,
		created.ID,
		created.Name,
		created.Email,
		created.PasswordHash,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error().
				Str("email", created.Email).
				Msg("user with this email already exists")
			return nil, repository.ErrEmailTaken
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	r.logger.Debug().
		Str("user_id", created.ID).
		Str("email", created.Email).
		Msg("inserted user")
	return &created, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, id string, params repository.UpdateUserParams) (*models.User, error) {
	user := &models.User{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		UpdatedAt:    params.UpdatedAt,
	}

	const updateUserQuery = `
UPDATE users
SET name = $1,
    email = $2,
    password = $3,
    updated_at = $4
WHERE id = $5
RETURNING created_at
`
	err := r.pgPool.QueryRow(
		ctx,
		updateUserQuery,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	).Scan(&user.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, repository.ErrUserNotFound
		case isUniqueViolation(err):
			r.logger.Error().
				Str("user_id", user.ID).
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, repository.ErrEmailTaken
		}

		r.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user")
		return nil, err
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Msg("updated user")
	return user, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{Email: email}

	const selectUserByEmailQuery = `
SELECT id,
       name,
       password,
       created_at,
       updated_at
FROM users
WHERE email = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}

		r.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	return user, nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	tag, err := r.pgPool.Exec(
		ctx,
		deleteUserQuery,
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to delete user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	r.logger.Debug().
		Str("user_id", id).
		Msg("deleted user")
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
