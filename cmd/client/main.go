package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-net-storage/internal/adapter"
	"github.com/MKhiriev/go-net-storage/internal/client"
	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/session"
	"github.com/MKhiriev/go-net-storage/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("net-storage-client", cfg.LogPath)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	socketAdapter, err := adapter.NewWebsocketAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create socket adapter")
	}

	app, err := client.NewApp(cfg, session.New(serverAdapter, socketAdapter, log), os.Stdin, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err = app.Run(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("client run error")
	}
}
