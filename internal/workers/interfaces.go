// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that allows
// running multiple workers in a unified way, and the notification
// dispatcher that delivers account notifications off the request path.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution and returns once it is running; Stop asks
// it to finish outstanding work and waits until it has, or until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run() {
//	    // start background processing
//	}
//
//	func (w *MyWorker) Stop(ctx context.Context) error {
//	    return nil
//	}
type Worker interface {
	Run()
	Stop(ctx context.Context) error
}
