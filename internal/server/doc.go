// Package server runs the HTTP transport of the task manager together with
// its background workers, and shuts both down gracefully on SIGINT, SIGTERM
// or SIGQUIT.
package server
