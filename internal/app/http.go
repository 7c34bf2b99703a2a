package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"

	"github.com/adanyl0v/taskpad/internal/config"
	"github.com/adanyl0v/taskpad/internal/delivery/http/v1"
)

func newHTTPHandler(logger zerolog.Logger, cfg *config.Config, handler v1.Handler) (http.Handler, error) {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	authLimit, err := v1.NewRateLimitMiddleware(logger, cfg.HTTP.AuthRateLimit)
	if err != nil {
		logger.Error().
			Err(err).
			Str("rate", cfg.HTTP.AuthRateLimit).
			Msg("failed to parse auth rate limit")
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(v1.NewAccessLogMiddleware(logger))
	router.Use(v1.HandleMetricsMiddleware)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v1.RegisterRoutes(router, handler, authLimit)

	secureMiddleware := secure.New(secure.Options{
		IsDevelopment:      cfg.Env == config.EnvLocal,
		ContentTypeNosniff: true,
		FrameDeny:          true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})
	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
	return corsMiddleware(secureMiddleware.Handler(router)), nil
}

func (a *App) listenAndServeHTTP() error {
	httpCfg := a.cfg.HTTP

	server := &http.Server{
		Addr:              net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler:           a.handler,
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	a.logger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		return err
	}
	a.logger.Info().Msg("shut down http server")
	return nil
}
