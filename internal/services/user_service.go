package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
	"github.com/adanyl0v/taskpad/internal/security"
)

const (
	msgUserRequired    = "name, email and password are required"
	msgInvalidUserBody = "invalid user"
)

type userServiceImpl struct {
	logger   zerolog.Logger
	users    repository.UserRepository
	hasher   security.Hasher
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(
	logger zerolog.Logger,
	users repository.UserRepository,
	hasher security.Hasher,
) UserService {
	return &userServiceImpl{
		logger:   logger,
		users:    users,
		hasher:   hasher,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *userServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	err := validateStruct(s.validate, params, msgUserRequired, msgInvalidUserBody)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid register params")
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	now := s.now()
	user, err := s.users.Create(ctx, &models.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error) {
	err := validateStruct(s.validate, params, msgUserRequired, msgInvalidUserBody)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.ID).
			Msg("invalid update user params")
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	user, err := s.users.Update(ctx, params.ID, repository.UpdateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		UpdatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("updated user")
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	err := s.users.Delete(ctx, userID)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Msg("deleted user")
	return nil
}
