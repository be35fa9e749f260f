// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer      *httpServer
	runners         []Runner
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger, runners ...Runner) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoAddress
	}
	logger.Info().Msg("creating new server...")

	return &server{
		httpServer:      newHTTPServer(handler, cfg, logger),
		runners:         runners,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// RunServer starts the HTTP server and every runner. A stop signal, or the
// first component to fail, shuts the HTTP server down and cancels the
// runners.
func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.httpServer.RunServer)
	for _, r := range s.runners {
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped: %w", err)
	}
	s.logger.Info().Msg("server shut down gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
