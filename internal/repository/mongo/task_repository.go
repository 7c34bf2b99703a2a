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

type taskRepositoryImpl struct {
	logger zerolog.Logger
	tasks  *mongo.Collection
}

func NewTaskRepository(logger zerolog.Logger, db *mongo.Database) repository.TaskRepository {
	return &taskRepositoryImpl{
		logger: logger,
		tasks:  db.Collection(tasksCollection),
	}
}

func (r *taskRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	// ObjectIDs grow with insertion time.
	cursor, err := r.tasks.Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to find tasks by user id")
		return nil, err
	}

	var docs []taskDocument
	err = cursor.All(ctx, &docs)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to decode tasks")
		return nil, err
	}

	tasks := make([]*models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.model())
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("found tasks by user id")
	return tasks, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.Debug().
			Str("task_id", id).
			Msg("malformed task id")
		return nil, repository.ErrTaskNotFound
	}

	var doc taskDocument
	err = r.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to find task by id")
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("found task by id")
	return doc.model(), nil
}

func (r *taskRepositoryImpl) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	doc := newTaskDocument(task)
	doc.ID = primitive.NewObjectID()

	_, err := r.tasks.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", task.UserID).
			Msg("failed to insert task")
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", doc.ID.Hex()).
		Msg("inserted task")
	return doc.model(), nil
}

func (r *taskRepositoryImpl) Replace(ctx context.Context, id string, params repository.ReplaceTaskParams) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrTaskNotFound
	}

	set := bson.M{
		"title":       params.Title,
		"description": params.Description,
		"priority":    string(params.Priority),
		"dueDate":     params.DueDate,
		"updatedAt":   params.UpdatedAt,
	}
	if params.Completed != nil {
		set["completed"] = *params.Completed
	}

	var doc taskDocument
	err = r.tasks.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("updated task")
	return doc.model(), nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrTaskNotFound
	}

	res, err := r.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrTaskNotFound
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}
