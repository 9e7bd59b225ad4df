package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"staybook/internal/adapters/observability"
	"staybook/internal/app"
	"staybook/internal/shared"
	"staybook/internal/storage"
)

func main() {
	path := flag.String("fixture", "fixtures/seed.yaml", "YAML fixture with admin, categories and hotels")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	fx, err := loadFixture(*path)
	if err != nil {
		log.Fatal().Err(err).Str("fixture", *path).Msg("fixture load failed")
	}
	log.Info().
		Str("fixture", *path).
		Str("store", cfg.StoreDriver).
		Int("categories", len(fx.Categories)).
		Int("hotels", len(fx.Hotels)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer store.Close(context.Background())

	// registration issues no tokens, so the auth service needs no issuer
	seeder := app.NewSeedService(store,
		app.NewAuthService(store, nil, nil),
		app.NewCategoryService(store, nil, 0),
		app.NewHotelService(store, nil, 0),
		cfg.SeedWorkers,
		observability.ObserveSeed,
	)

	rep, err := seeder.Run(ctx, fx)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Int("created", rep.Created).Int("skipped", rep.Skipped).Int("failed", rep.Failed).Msg("seeding completed")
	if err != nil {
		os.Exit(1)
	}
}
