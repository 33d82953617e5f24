package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"magazine-crm/internal/config"
	"magazine-crm/internal/importer"
	"magazine-crm/internal/logging"
	"magazine-crm/internal/notify"
	customerrepo "magazine-crm/internal/repository/customer"
	notificationrepo "magazine-crm/internal/repository/notification"
	customersvc "magazine-crm/internal/service/customer"
	"magazine-crm/internal/store"
)

func main() {
	var (
		filePath string
		record   bool
	)
	flag.StringVar(&filePath, "file", "", "Path to customer CSV (name,email,phone,magazineName,subscriptionStartDate)")
	flag.BoolVar(&record, "notify", false, "Record a notification for every imported customer")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := logging.New(os.Stderr, "importer", cfg.LogLevel)
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

	var events customersvc.Publisher
	if record {
		// Batch runs have no live listeners.
		recorder := notify.NewRecorder(notificationrepo.NewDocument(backend), logger)
		events = notify.NewNotifier(notify.NewHub(logger), recorder)
	}
	svc := customersvc.New(customerrepo.NewDocument(backend), events)

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, svc).Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", count).Msg("import failed")
	}

	fmt.Printf("Imported %d customers in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
