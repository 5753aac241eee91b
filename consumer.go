package fastspsc

import "iter"

// Consumer is the reading side of a queue created by [New].
// It must be used by a single goroutine at a time.
type Consumer[V any] struct {
	q *queue[V]

	// readNext is the local copy of the shared read cursor
	readNext uint64
	// writeCache is the last observed value of the producer cursor
	writeCache uint64

	released bool
}

// TryDequeue polls the queue exactly once.
//
// The returned [Poll] has status [PollValue] with the oldest value,
// [PollEmpty] if nothing is available yet or
// [PollEnded] if the stream is finished and fully drained.
func (c *Consumer[V]) TryDequeue() Poll[V] {
	if c.released {
		return Poll[V]{Status: PollEnded}
	}

	q := c.q

	if q.guard {
		q.enterPop()
		defer q.exitPop()
	}

	if c.readNext == c.writeCache {
		// The flag must be loaded before the cursor: the producer publishes
		// its last value before setting it
		ended := q.ended.Load()
		c.writeCache = q.writeNext.Load()

		if c.readNext == c.writeCache {
			if ended {
				return Poll[V]{Status: PollEnded}
			}
			return Poll[V]{Status: PollEmpty}
		}
	}

	// Move the value out of the slot
	idx := c.readNext & q.mask
	item := q.buffer[idx]

	var zero V
	q.buffer[idx] = zero

	// Give the slot back to the producer
	c.readNext++
	q.readNext.Store(c.readNext)

	return Poll[V]{Status: PollValue, Value: item}
}

// Dequeue returns the oldest value, busy-polling until one is available.
// It returns false once the stream is finished and every value has been read.
func (c *Consumer[V]) Dequeue() (V, bool) {
	for attempt := 0; ; attempt++ {
		res := c.TryDequeue()

		switch res.Status {
		case PollValue:
			return res.Value, true
		case PollEnded:
			return res.Value, false
		}

		c.q.wait.Wait(attempt)
	}
}

// All returns an iterator that dequeues values until the end of the stream.
func (c *Consumer[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for {
			item, ok := c.Dequeue()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// IsEmpty reports whether no value is currently available.
func (c *Consumer[V]) IsEmpty() bool {
	if c.released {
		return true
	}
	return c.readNext == c.q.writeNext.Load()
}

// Release gives up the consumer's share of the queue.
// The producer keeps filling the free slots, then gets [ErrReleased].
// The buffer is freed when the producer is released as well.
func (c *Consumer[V]) Release() {
	if c.released {
		return
	}

	c.released = true
	c.q.readerGone.Store(true)
	c.q.unref()
}

// Len returns the number of values waiting to be dequeued.
func (c *Consumer[V]) Len() int {
	return int(c.q.len())
}

// Cap returns the capacity of the queue.
func (c *Consumer[V]) Cap() int {
	return int(c.q.capacity)
}
