package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/handler"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/notify"
	"github.com/MKhiriev/go-health-share/internal/server"
	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/internal/store"
	"github.com/MKhiriev/go-health-share/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("health-share-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	notifier, err := notify.New(cfg.Notify, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier")
	}
	defer notifier.Close()

	services, err := service.NewServices(storages, notifier, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(storages, cfg.Workers, log)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	log.Info().Str("version", cfg.App.Version).Msg("starting server")
	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
