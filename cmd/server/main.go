// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simcop2387/usgromana/internal/adapter"
	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/handler/http"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/queue"
	"github.com/simcop2387/usgromana/internal/server"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/internal/workers"
	"github.com/simcop2387/usgromana/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}
	if buildVersion != "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	var extra []io.Writer
	if cfg.App.LogFile != "" {
		f, err := logger.OpenLogFile(cfg.App.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		extra = append(extra, f)
	}
	log := logger.NewLogger("usgromana", cfg.App.LogLevel, extra...)
	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("users_file", cfg.Storage.UsersFile).Msg("received configs")

	storages := store.NewStorages(cfg.Storage, log)

	classifier := func() (service.Classifier, error) {
		if cfg.Safety.ClassifierURL == "" {
			return nil, nil
		}
		c, err := adapter.NewHTTPClassifier(cfg.Safety, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	services, err := service.NewServices(storages, *cfg, classifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	if err = services.AuthService.EnsureGuest(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error creating the guest account")
	}

	var executor adapter.Executor
	if cfg.Adapter.ExecutorURL != "" {
		if executor, err = adapter.NewHTTPExecutor(cfg.Adapter, log); err != nil {
			log.Fatal().Err(err).Msg("error creating executor adapter")
		}
	} else {
		log.Warn().Msg("no executor configured, queued prompts will not run")
	}

	promptQueue := queue.NewIsolator(
		queue.NewPromptQueue(cfg.Queue.MaxHistorySize),
		services.PermissionService,
		cfg.Queue.FallbackOwner,
		log,
	)

	var runners []server.Runner
	if executor != nil {
		pool := workers.NewWorkers(cfg.Queue, promptQueue, executor, log)
		log.Info().Int("workers", pool.Len()).Msg("queue workers ready")
		runners = append(runners, pool)
	}

	handler := http.NewHandler(services, promptQueue, executor, *cfg, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log, runners...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}
	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
