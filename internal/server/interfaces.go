package server

import "context"

// Server defines the lifecycle of the application server.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}

// BackgroundWorkers is started with the server and stopped after it.
type BackgroundWorkers interface {
	Run()
	Stop(ctx context.Context) error
}
