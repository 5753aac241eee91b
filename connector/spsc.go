package connector

import (
	"errors"

	"github.com/squadracorsepolito/fastspsc"
)

// SPSC implements a [Connector] on top of a lock-free SPSC queue.
// Write and Close must be called by the writer goroutine,
// Read by the reader goroutine.
type SPSC[T any] struct {
	prod *fastspsc.Producer[T]
	cons *fastspsc.Consumer[T]
}

// NewSPSC creates a new [SPSC] connector holding 1 << capacityExponent items.
func NewSPSC[T any](capacityExponent int, opts ...fastspsc.Option) (*SPSC[T], error) {
	prod, cons, err := fastspsc.New[T](capacityExponent, opts...)
	if err != nil {
		return nil, err
	}

	return &SPSC[T]{
		prod: prod,
		cons: cons,
	}, nil
}

// Write adds an item to the [SPSC] connector.
// It busy-polls until there is space.
//
// Returns [ErrClosed] if the connector is closed.
func (s *SPSC[T]) Write(item T) error {
	err := s.prod.Enqueue(item)
	if errors.Is(err, fastspsc.ErrFinished) || errors.Is(err, fastspsc.ErrReleased) {
		return ErrClosed
	}
	return err
}

// Read retrieves an item from the [SPSC] connector.
// It busy-polls until an item is available.
//
// Returns [ErrClosed] once the connector is closed and every item was read.
func (s *SPSC[T]) Read() (T, error) {
	item, ok := s.cons.Dequeue()
	if !ok {
		s.cons.Release()
		return item, ErrClosed
	}
	return item, nil
}

// Close marks the end of the stream, pending items can still be read.
// The queue is freed once the reader has got [ErrClosed].
func (s *SPSC[T]) Close() {
	s.prod.Release()
}

// Len returns the number of items waiting to be read.
func (s *SPSC[T]) Len() int {
	return s.cons.Len()
}
