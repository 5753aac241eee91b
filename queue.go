package fastspsc

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// MaxCapacityExponent is the largest exponent accepted by [New].
// 1 << MaxCapacityExponent is still a valid slice length.
const MaxCapacityExponent = bits.UintSize - 2

// Cleanable is implemented by values that hold resources which must be
// released when they are dropped from the queue without being dequeued.
type Cleanable interface {
	Cleanup()
}

// queue is the state shared by a [Producer] and a [Consumer].
// writeNext and ended are stored only by the producer,
// readNext is stored only by the consumer.
type queue[V any] struct {
	writeNext atomic.Uint64

	_ cpu.CacheLinePad

	readNext atomic.Uint64

	_ cpu.CacheLinePad

	ended atomic.Bool

	_ cpu.CacheLinePad

	capacity uint64
	mask     uint64

	buffer []V

	// refs counts the live handles, the buffer is dropped when it reaches zero.
	refs atomic.Int32
	// readerGone is set when the consumer is released, slots are never freed after that
	readerGone atomic.Bool

	// SPSC guards, only used when the misuse guard is enabled
	guard      bool
	pushActive atomic.Uint32
	popActive  atomic.Uint32

	wait WaitStrategy
	tel  *queueTelemetry
}

// New creates a queue able to hold 1 << capacityExponent values
// and returns its two handles.
//
// Returns [ErrInvalidCapacityExponent] if capacityExponent is negative
// or greater than [MaxCapacityExponent].
func New[V any](capacityExponent int, opts ...Option) (*Producer[V], *Consumer[V], error) {
	if capacityExponent < 0 || capacityExponent > MaxCapacityExponent {
		return nil, nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidCapacityExponent, capacityExponent, MaxCapacityExponent)
	}

	cfg := newConfig(opts...)

	capacity := uint64(1) << capacityExponent
	q := &queue[V]{
		capacity: capacity,
		mask:     capacity - 1,

		buffer: make([]V, capacity),

		guard: cfg.misuseGuard,
		wait:  cfg.wait,
	}
	q.refs.Store(2)

	if cfg.telemetryName != "" {
		q.tel = newQueueTelemetry(cfg.telemetryName, q)
	}

	return &Producer[V]{q: q}, &Consumer[V]{q: q}, nil
}

// MustNew is like [New] but panics if the capacity exponent is out of range.
func MustNew[V any](capacityExponent int, opts ...Option) (*Producer[V], *Consumer[V]) {
	prod, cons, err := New[V](capacityExponent, opts...)
	if err != nil {
		panic(err)
	}
	return prod, cons
}

// ExponentFor returns the smallest capacity exponent whose capacity
// holds at least n values.
func ExponentFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func (q *queue[V]) len() uint64 {
	// readNext is loaded first so the difference can never underflow
	read := q.readNext.Load()
	write := q.writeNext.Load()

	n := write - read
	if n > q.capacity {
		return q.capacity
	}
	return n
}

func (q *queue[V]) enterPush() {
	if !q.pushActive.CompareAndSwap(0, 1) {
		panic("fastspsc: concurrent Enqueue on SPSC queue - only one producer allowed")
	}
}

func (q *queue[V]) exitPush() {
	q.pushActive.Store(0)
}

func (q *queue[V]) enterPop() {
	if !q.popActive.CompareAndSwap(0, 1) {
		panic("fastspsc: concurrent Dequeue on SPSC queue - only one consumer allowed")
	}
}

func (q *queue[V]) exitPop() {
	q.popActive.Store(0)
}

// unref drops one handle reference and frees the buffer
// once both handles are released.
func (q *queue[V]) unref() {
	if q.refs.Add(-1) != 0 {
		return
	}

	if q.tel != nil {
		q.tel.close()
	}

	// Both sides are gone, cleanup the values that were never dequeued
	read := q.readNext.Load()
	write := q.writeNext.Load()
	for cursor := read; cursor != write; cursor++ {
		if cleanable, ok := any(q.buffer[cursor&q.mask]).(Cleanable); ok {
			cleanable.Cleanup()
		}
	}

	q.buffer = nil
}
