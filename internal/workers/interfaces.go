// Package workers provides abstractions for managing and running
// background workers in the client.
// It defines the Worker interface, a Workers aggregate that starts and
// stops multiple workers in a unified way, and the RefetchJob that keeps
// registered records fresh.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker and returns immediately. Stop blocks until the
// worker has fully exited and is safe to call on a worker that never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Refetcher is implemented by records that can re-read their state from the
// server.
type Refetcher interface {
	Refetch(ctx context.Context) error
}
