// Package http implements the REST transport of the task manager.
//
// It wires chi routes for users, avatars and tasks, and the middleware chain
// around them: request tracing, access logging, panic recovery, gzip and
// bearer token authentication. Every failure is rendered as
// {"error":{"kind","message","fields"}} with the status chosen by
// errorStatusMap.
package http
