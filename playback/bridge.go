// ABOUTME: Adapts scheduler events onto a channel for consumers with their own event loop
// ABOUTME: Sends block until received or the context ends, so steps are never dropped

package playback

import "context"

// Forward returns a handler that sends every event to ch until ctx is done.
// A send blocked while a new trace starts completes with the old epoch, so
// the receiver compares Event.Epoch against State().Epoch before using it.
func Forward(ctx context.Context, ch chan<- Event) func(Event) {
	return func(ev Event) {
		select {
		case ch <- ev:
		case <-ctx.Done():
		}
	}
}
