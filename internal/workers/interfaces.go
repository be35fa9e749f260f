// Package workers runs the background loops of the server.
//
// A [Worker] blocks in Run until its context is cancelled or it fails.
// [Workers] starts a set of them together and stops all of them as soon as
// one returns an error.
package workers

import "context"

// Worker is a background loop. Run returns nil when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context) error
}
