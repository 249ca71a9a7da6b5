// Package server runs the REST API of the progress tracker.
//
// It owns the HTTP server lifecycle: startup, signal handling and graceful
// shutdown within a bounded grace period.
package server
