// cmd/seedcatalog loads a YAML catalog fixture into Postgres.
// Usage: go run ./cmd/seedcatalog -f internal/repository/testdata/catalog.yaml
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/config"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/infra"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	path := flag.String("f", "", "path to the YAML catalog fixture (defaults to CATALOG_FIXTURE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *path == "" {
		*path = cfg.CatalogFixture
	}
	if *path == "" {
		log.Fatal().Msg("no fixture given: pass -f or set CATALOG_FIXTURE")
	}

	fx, err := repository.LoadFixture(*path)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("failed to load fixture")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := repository.SeedFixture(ctx, db, fx); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Int("categories", len(fx.Categories)).
		Int("brands", len(fx.Brands)).
		Int("products", len(fx.Products)).
		Msg("catalog seeded")
}
