// Package workers runs the background jobs of the share backend.
//
// A [Worker] blocks until its context is cancelled. [Workers] starts every
// registered worker in its own goroutine and waits for all of them.
package workers

import (
	"context"
	"time"
)

// Worker is a background job. Run must return once ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// Purger drops expired entries and reports how many were removed.
type Purger interface {
	Purge(now time.Time) int
}
