package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/config"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/infra"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/repository"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	var (
		db   *gorm.DB
		repo repository.CatalogRepository
	)
	if cfg.CatalogFixture != "" {
		fx, err := repository.LoadFixture(cfg.CatalogFixture)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.CatalogFixture).Msg("failed to load catalog fixture")
		}
		repo = repository.NewSnapshotRepository(fx)
		log.Info().Str("path", cfg.CatalogFixture).Int("products", len(fx.Products)).Msg("serving catalog from fixture")
	} else {
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		repo = repository.NewCatalogRepository(db)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			// The cache is optional: run without it rather than refuse to start.
			log.Warn().Err(err).Msg("redis unavailable, category cache disabled")
			rdb = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storeCB := infra.NewCircuitBreaker(cfg.Breaker())
	r := router.New(ctx, cfg, db, rdb, repo, storeCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("catalog API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
