// Package server runs the HTTP and realtime transport of the reference server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown.
package server
