package connector

import "sync"

// Channel implements a [Connector] using a buffered channel.
// Close must be called by the writer goroutine.
type Channel[T any] struct {
	buffer chan T

	closed    bool
	closeOnce sync.Once
}

// NewChannel creates a new [Channel] with the given capacity.
func NewChannel[T any](size uint64) *Channel[T] {
	return &Channel[T]{
		buffer: make(chan T, size),
	}
}

// Write adds an item to the [Channel], blocking while it is full.
//
// Returns [ErrClosed] if the channel is closed.
func (c *Channel[T]) Write(item T) error {
	if c.closed {
		return ErrClosed
	}

	c.buffer <- item
	return nil
}

// Read retrieves an item from the [Channel], blocking while it is empty.
//
// Returns [ErrClosed] once the channel is closed and drained.
func (c *Channel[T]) Read() (T, error) {
	item, ok := <-c.buffer
	if !ok {
		return item, ErrClosed
	}
	return item, nil
}

// Close closes the [Channel] connector.
func (c *Channel[T]) Close() {
	c.closeOnce.Do(func() {
		c.closed = true
		close(c.buffer)
	})
}

// Len returns the number of items waiting to be read.
func (c *Channel[T]) Len() int {
	return len(c.buffer)
}
