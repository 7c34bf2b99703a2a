package mongo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
)

type userRepositoryImpl struct {
	logger zerolog.Logger
	users  *mongo.Collection
}

func NewUserRepository(logger zerolog.Logger, db *mongo.Database) repository.UserRepository {
	return &userRepositoryImpl{
		logger: logger,
		users:  db.Collection(usersCollection),
	}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	_, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, repository.ErrEmailTaken
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	r.logger.Debug().
		Str("user_id", doc.ID.Hex()).
		Str("email", doc.Email).
		Msg("inserted user")
	return doc.model(), nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, id string, params repository.UpdateUserParams) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}

	var doc userDocument
	err = r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":      params.Name,
			"email":     params.Email,
			"password":  params.PasswordHash,
			"updatedAt": params.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, repository.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			r.logger.Error().
				Str("user_id", id).
				Str("email", params.Email).
				Msg("user with this email already exists")
			return nil, repository.ErrEmailTaken
		}

		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to update user")
		return nil, err
	}
	r.logger.Debug().
		Str("user_id", id).
		Msg("updated user")
	return doc.model(), nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		r.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to find user by email")
		return nil, err
	}
	return doc.model(), nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrUserNotFound
	}

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to delete user")
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}
	r.logger.Debug().
		Str("user_id", id).
		Msg("deleted user")
	return nil
}
