// Command seed loads the default users, sites and activity categories into
// an empty database.
package main

import (
	"context"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/bootstrap"
	"github.com/krisnabayu-afk/Flux-version-0.4/config"
	"github.com/krisnabayu-afk/Flux-version-0.4/database"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/logger"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, "console")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	seeder := services.NewSeeder(repo.NewUserRepository(db), repo.NewSiteRepository(db), repo.NewCategoryRepository(db), log)
	seeded, err := seeder.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if !seeded {
		log.Info().Msg("users already present, nothing to do")
		return
	}
	log.Info().Str("db", cfg.MongoDB).Msg("seed complete")
}
