package app

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/config"
)

func readEnv(logger zerolog.Logger) (*config.Config, error) {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to read env")
		return nil, err
	}
	logger.Info().
		Str("env", cfg.Env).
		Str("store", cfg.Store.Driver).
		Msg("read env")
	return cfg, nil
}
