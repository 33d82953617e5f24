package main

import (
	"context"
	"os"

	"magazine-crm/internal/config"
	"magazine-crm/internal/logging"
	"magazine-crm/internal/seed"
	"magazine-crm/internal/store"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(os.Stdout, "seed", cfg.LogLevel)

	ctx := context.Background()
	backend, closeStore, err := store.Open(ctx, store.Options{
		Backend: cfg.StoreBackend,
		DataDir: cfg.DataDir,
		DSN:     cfg.DBConnString,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer closeStore()

	res, err := seed.Apply(ctx, backend, cfg.AdminUsername)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	created := make([]string, 0, len(res.Created))
	for _, doc := range res.Created {
		created = append(created, string(doc))
	}
	logger.Info().Strs("created", created).Msg("seed applied")
}
