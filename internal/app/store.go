package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/config"
	"github.com/adanyl0v/taskpad/internal/repository"
	"github.com/adanyl0v/taskpad/internal/repository/memory"
	mongorepo "github.com/adanyl0v/taskpad/internal/repository/mongo"
	"github.com/adanyl0v/taskpad/internal/repository/postgres"
)

type store struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	pinger repository.Pinger
	close  func()
}

func openStore(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, err := connectMongo(ctx, logger, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		return &store{
			tasks:  mongorepo.NewTaskRepository(logger, db),
			users:  mongorepo.NewUserRepository(logger, db),
			pinger: mongoPinger{client: client},
			close: func() {
				err := client.Disconnect(context.Background())
				if err != nil {
					logger.Error().
						Err(err).
						Msg("failed to disconnect from mongo")
					return
				}
				logger.Info().Msg("disconnected from mongo")
			},
		}, nil

	case config.StoreDriverPostgres:
		pool, err := connectPostgres(ctx, logger, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return &store{
			tasks:  postgres.NewTaskRepository(logger, pool),
			users:  postgres.NewUserRepository(logger, pool),
			pinger: pool,
			close: func() {
				pool.Close()
				logger.Info().Msg("disconnected from postgres")
			},
		}, nil

	case config.StoreDriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		mem := memory.New()
		return &store{
			tasks:  mem.Tasks(),
			users:  mem.Users(),
			pinger: mem,
			close:  func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
