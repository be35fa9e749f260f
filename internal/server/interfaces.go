package server

import "context"

// Server is the lifecycle of the whole process: RunServer blocks until a
// stop signal arrives or a component fails.
type Server interface {
	RunServer() error
	Shutdown(ctx context.Context) error
}

// Runner is a background component bound to the server lifetime, such as
// the queue workers.
type Runner interface {
	Run(ctx context.Context) error
}
