// Package sink drains the consumer side of an SPSC queue into a destination.
package sink

import (
	"context"

	"github.com/squadracorsepolito/fastspsc"
)

// Sink receives the values read from a queue.
type Sink[V any] interface {
	Deliver(ctx context.Context, item V) error
	Close(ctx context.Context) error
}

// Drain delivers every value of cons to s until the end of the stream.
// Between empty polls it checks ctx, so a stalled producer does not
// keep it spinning forever.
//
// It returns the number of delivered values, the first delivery error
// or the context error.
func Drain[V any](ctx context.Context, cons *fastspsc.Consumer[V], s Sink[V], ws fastspsc.WaitStrategy) (int, error) {
	if ws == nil {
		ws = fastspsc.SpinWait{}
	}

	delivered := 0
	attempt := 0

	for {
		res := cons.TryDequeue()

		switch res.Status {
		case fastspsc.PollEnded:
			return delivered, nil

		case fastspsc.PollValue:
			if err := s.Deliver(ctx, res.Value); err != nil {
				return delivered, err
			}
			delivered++
			attempt = 0

		case fastspsc.PollEmpty:
			select {
			case <-ctx.Done():
				return delivered, ctx.Err()
			default:
			}

			ws.Wait(attempt)
			attempt++
		}
	}
}
