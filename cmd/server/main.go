// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/handler"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
	"github.com/milleriumage/oi-friendly-voice/internal/realtime"
	"github.com/milleriumage/oi-friendly-voice/internal/server"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	_ = build.Print(os.Stdout)

	log := logger.NewLogger("oifv-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		if !build.HasVersion() {
			log.Warn().Msg("no build version linked, reporting N/A")
		}
		cfg.App.Version = build.BuildVersion()
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx := context.Background()

	repos, err := store.NewRepositories(ctx, cfg.DB.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}
	defer repos.Close()

	var (
		publisher service.ChangePublisher = realtime.NopPublisher{}
		closers   []server.Closer
	)
	if cfg.Realtime.Broker != "" {
		p, err := realtime.NewPublisher(realtime.PublisherOptions{
			Broker:         cfg.Realtime.Broker,
			ClientID:       cfg.Realtime.ClientID,
			TopicPrefix:    cfg.Realtime.TopicPrefix,
			ConnectTimeout: cfg.Realtime.ConnectTimeout,
			Logger:         log.Component("publisher"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting change publisher")
		}
		publisher = p
		closers = append(closers, p)
	} else {
		log.Warn().Msg("no realtime broker configured, changes are not pushed")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err = metrics.Register(registry); err != nil {
		log.Fatal().Err(err).Msg("error registering metrics")
	}

	services, err := service.NewServices(repos, publisher, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, registry, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, closers...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
