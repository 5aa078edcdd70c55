package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/server"
	"github.com/happyshop/storefront/internal/server/repository"
)

type config struct {
	HTTPPort        string        `env:"HTTP_PORT,default=10000"`
	DBPath          string        `env:"DB_PATH,default=storefront.db"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH,default=./migrations"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := envdecode.Decode(&cfg); err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to decode config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open product database")
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("db", cfg.DBPath).Msg("product database ready")

	router := server.NewRouter(
		server.NewProductHandler(repo, log),
		server.NewOrderHandler(log),
		log,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
