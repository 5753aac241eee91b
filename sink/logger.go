package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/squadracorsepolito/fastspsc/internal"
)

// Logger is a [Sink] that logs every received value.
type Logger[V any] struct {
	l     *internal.Logger
	stats *internal.Stats
}

// NewLogger returns a [Logger] named name. A nil handler logs to the terminal.
func NewLogger[V any](name string, handler slog.Handler) *Logger[V] {
	if handler == nil {
		handler = internal.NewTerminalHandler(slog.LevelInfo)
	}

	l := internal.NewLoggerWithHandler("sink", name, handler)

	return &Logger[V]{
		l:     l,
		stats: internal.NewStats(l, 0),
	}
}

// RunStats logs the delivery rate once per second until ctx is done.
func (s *Logger[V]) RunStats(ctx context.Context) {
	s.stats.Run(ctx)
}

func (s *Logger[V]) Deliver(_ context.Context, item V) error {
	s.l.Info("received", "value", item)

	s.stats.IncrementItemCount()
	if str, ok := any(item).(fmt.Stringer); ok {
		s.stats.IncrementByteCountBy(len(str.String()))
	} else if str, ok := any(item).(string); ok {
		s.stats.IncrementByteCountBy(len(str))
	}

	return nil
}

func (s *Logger[V]) Close(_ context.Context) error {
	s.l.Info("sink closed", "received", s.stats.TotalItems())
	return nil
}

// Received returns the number of delivered values.
func (s *Logger[V]) Received() uint64 {
	return s.stats.TotalItems()
}
