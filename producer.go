package fastspsc

// Producer is the writing side of a queue created by [New].
// It must be used by a single goroutine at a time.
type Producer[V any] struct {
	q *queue[V]

	// writeNext is the local copy of the shared write cursor
	writeNext uint64
	// readCache is the last observed value of the consumer cursor
	readCache uint64

	finished bool
	released bool
}

func (p *Producer[V]) hasSpace() (bool, error) {
	if p.writeNext-p.readCache < p.q.capacity {
		return true, nil
	}

	// The cached cursor says full, reload the real one.
	// The flag is loaded first: the consumer stores its cursor before setting it
	readerGone := p.q.readerGone.Load()
	p.readCache = p.q.readNext.Load()
	if p.writeNext-p.readCache < p.q.capacity {
		return true, nil
	}

	if readerGone {
		return false, ErrReleased
	}
	return false, nil
}

func (p *Producer[V]) check() error {
	if p.released {
		return ErrReleased
	}
	if p.finished {
		return ErrFinished
	}
	return nil
}

func (p *Producer[V]) push(item V) {
	p.q.buffer[p.writeNext&p.q.mask] = item

	// Publish the slot after it has been written
	p.writeNext++
	p.q.writeNext.Store(p.writeNext)
}

// Enqueue moves item into the queue.
// It busy-polls until the consumer has freed a slot.
//
// Returns [ErrFinished] after [Producer.Finish] and
// [ErrReleased] after [Producer.Release], or when the queue is full
// and the consumer has been released.
func (p *Producer[V]) Enqueue(item V) error {
	if err := p.check(); err != nil {
		return err
	}

	if p.q.guard {
		p.q.enterPush()
		defer p.q.exitPush()
	}

	for attempt := 0; ; attempt++ {
		ok, err := p.hasSpace()
		if err != nil {
			return err
		}
		if ok {
			break
		}

		p.q.wait.Wait(attempt)
	}

	p.push(item)

	return nil
}

// TryEnqueue is the single attempt version of [Producer.Enqueue].
// It returns false if the queue is full.
func (p *Producer[V]) TryEnqueue(item V) (bool, error) {
	if err := p.check(); err != nil {
		return false, err
	}

	if p.q.guard {
		p.q.enterPush()
		defer p.q.exitPush()
	}

	ok, err := p.hasSpace()
	if !ok {
		return false, err
	}

	p.push(item)

	return true, nil
}

// Finish signals the end of the stream.
// Calling it more than once has no effect.
func (p *Producer[V]) Finish() {
	if p.finished || p.released {
		return
	}

	p.finished = true
	p.q.ended.Store(true)
}

// Release finishes the stream and gives up the producer's share of the queue.
// The buffer is freed when the consumer is released as well.
func (p *Producer[V]) Release() {
	if p.released {
		return
	}

	p.Finish()
	p.released = true
	p.q.unref()
}

// Len returns the number of values waiting to be dequeued.
func (p *Producer[V]) Len() int {
	return int(p.q.len())
}

// Cap returns the capacity of the queue.
func (p *Producer[V]) Cap() int {
	return int(p.q.capacity)
}
