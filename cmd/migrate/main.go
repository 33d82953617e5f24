package main

import (
	"context"
	"os"

	"magazine-crm/internal/config"
	"magazine-crm/internal/db"
	"magazine-crm/internal/logging"
	"magazine-crm/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(os.Stdout, "migrate", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("read schema version")
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
}
