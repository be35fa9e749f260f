package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingRunner struct {
	started chan struct{}
	stopped bool
}

func (r *blockingRunner) Run(ctx context.Context) error {
	close(r.started)
	<-ctx.Done()
	r.stopped = true
	return ctx.Err()
}

type failingRunner struct{}

func (failingRunner) Run(context.Context) error {
	return errors.New("executor unreachable")
}

func testConfig() config.Server {
	return config.Server{HTTPAddress: "127.0.0.1:0", ShutdownTimeout: time.Second}
}

func TestNewServer_RequiresAddress(t *testing.T) {
	_, err := NewServer(http.NotFoundHandler(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoAddress)
}

func TestRun_StopsRunnersOnCancel(t *testing.T) {
	runner := &blockingRunner{started: make(chan struct{})}
	s, err := NewServer(http.NotFoundHandler(), testConfig(), logger.Nop(), runner)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-runner.started
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- s.(*server).run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.True(t, runner.stopped)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_FailingRunnerStopsServer(t *testing.T) {
	s, err := NewServer(http.NotFoundHandler(), testConfig(), logger.Nop(), failingRunner{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.(*server).run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "executor unreachable")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
