package notifier

import (
	"context"

	"github.com/aleister1102/jsonmonitor/internal/models"
)

// Notifier delivers a text message to an external destination.
//
// Notify never blocks on network I/O. The returned channel yields exactly one
// result and is then closed; callers that don't care may drop it.
type Notifier interface {
	Notify(ctx context.Context, message string) <-chan models.NotificationResult
}

// resolved returns an already-completed result handle.
func resolved(result models.NotificationResult) <-chan models.NotificationResult {
	ch := make(chan models.NotificationResult, 1)
	ch <- result
	close(ch)
	return ch
}
