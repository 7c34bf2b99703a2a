package app

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/adanyl0v/taskpad/internal/config"
	mongorepo "github.com/adanyl0v/taskpad/internal/repository/mongo"
)

func connectMongo(ctx context.Context, logger zerolog.Logger, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to connect to mongo")
		return nil, err
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to ping mongo")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	err = mongorepo.EnsureIndexes(ctx, client.Database(cfg.Database))
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to ensure mongo indexes")
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info().
		Str("database", cfg.Database).
		Msg("connected to mongo")
	return client, nil
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
