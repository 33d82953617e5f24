package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"magazine-crm/internal/config"
	"magazine-crm/internal/httpserver"
	"magazine-crm/internal/logging"
	"magazine-crm/internal/notify"
	customerrepo "magazine-crm/internal/repository/customer"
	notificationrepo "magazine-crm/internal/repository/notification"
	profilerepo "magazine-crm/internal/repository/profile"
	"magazine-crm/internal/seed"
	authsvc "magazine-crm/internal/service/auth"
	customersvc "magazine-crm/internal/service/customer"
	profilesvc "magazine-crm/internal/service/profile"
	"magazine-crm/internal/store"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(os.Stdout, "api", cfg.LogLevel)

	ctx := context.Background()
	backend, closeStore, err := store.Open(ctx, store.Options{
		Backend: cfg.StoreBackend,
		DataDir: cfg.DataDir,
		DSN:     cfg.DBConnString,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store")
	}
	defer closeStore()

	seeded, err := seed.Apply(ctx, backend, cfg.AdminUsername)
	if err != nil {
		logger.Fatal().Err(err).Msg("ensure documents")
	}
	for _, doc := range seeded.Created {
		logger.Info().Str("document", string(doc)).Msg("created missing document")
	}

	hub := notify.NewHub(logger.With().Str("subsystem", "hub").Logger())
	recorder := notify.NewRecorder(notificationrepo.NewDocument(backend), logger)
	notifier := notify.NewNotifier(hub, recorder)

	customerService := customersvc.New(customerrepo.NewDocument(backend), notifier)
	profileService := profilesvc.New(profilerepo.NewDocument(backend))
	authService, err := authsvc.New(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("init auth")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CustomerSvc:    customerService,
		ProfileSvc:     profileService,
		AuthSvc:        authService,
		Notifications:  recorder,
		Hub:            hub,
		Store:          backend,
		CORSOrigins:    cfg.CORSOrigins,
		WSWriteTimeout: cfg.WSWriteTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.StoreBackend).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}
