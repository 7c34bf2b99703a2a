// Package app builds the service from the environment and runs it.
package app

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/config"
	"github.com/adanyl0v/taskpad/internal/delivery/http/v1"
	"github.com/adanyl0v/taskpad/internal/security"
	"github.com/adanyl0v/taskpad/internal/services"
	"github.com/adanyl0v/taskpad/internal/summary"
)

type App struct {
	logger  zerolog.Logger
	cfg     *config.Config
	handler http.Handler
	store   *store
}

// New reads the configuration and connects every collaborator. The
// returned App owns the store connection until Close.
func New(ctx context.Context) (*App, error) {
	logger := NewDefaultLogger()

	cfg, err := readEnv(logger)
	if err != nil {
		return nil, err
	}

	logger, err = NewApplicationLogger(logger, cfg.Env)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}

	generator, err := summary.NewGeminiGenerator(ctx, logger, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create summary generator")
		st.close()
		return nil, err
	}

	hasher := newHasher(cfg.Password)
	handler := v1.New(logger, v1.Options{
		Auth: services.NewAuthService(
			logger,
			st.users,
			hasher,
			cfg.JWT.Issuer,
			[]byte(cfg.JWT.SigningKey),
			cfg.JWT.AccessTokenTTL,
		),
		Users:            services.NewUserService(logger, st.users, hasher),
		Tasks:            services.NewTaskService(logger, st.tasks),
		Summary:          services.NewSummaryService(logger, st.tasks, generator),
		Store:            st.pinger,
		EnforceOwnership: cfg.JWT.EnforceOwnership,
	})

	httpHandler, err := newHTTPHandler(logger, cfg, handler)
	if err != nil {
		st.close()
		return nil, err
	}

	return &App{
		logger:  logger,
		cfg:     cfg,
		handler: httpHandler,
		store:   st,
	}, nil
}

// Run serves HTTP until SIGINT or SIGTERM.
func (a *App) Run() error {
	return a.listenAndServeHTTP()
}

func (a *App) Close() {
	a.store.close()
}

func newHasher(cfg config.PasswordConfig) security.Hasher {
	var primary security.Hasher = security.NewBcryptHasher(cfg.BcryptCost)
	if cfg.Hasher == config.HasherArgon2id {
		primary = security.NewArgon2idHasher()
	}
	return security.NewMultiHasher(primary, cfg.BcryptCost)
}
