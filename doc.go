/*
Package fastspsc provides a bounded lock-free FIFO queue connecting exactly one
producer goroutine to exactly one consumer goroutine, with an explicit end of
stream.

The capacity is always a power of two and is given as an exponent:

	prod, cons, err := fastspsc.New[string](1) // 2 slots
	if err != nil {
		return err
	}

The producer moves values in and signals the end of the stream:

	go func() {
		defer prod.Release()
		for i := range 60 {
			prod.Enqueue(strconv.Itoa(i))
		}
	}()

The consumer reads until the stream is finished and drained:

	defer cons.Release()
	for msg := range cons.All() {
		fmt.Println("received", msg)
	}

Blocking calls busy-poll the peer cursor through a [WaitStrategy], they never
park on a mutex or a channel. [Consumer.TryDequeue] polls exactly once and
reports [PollEmpty], [PollEnded] or [PollValue], so it can be integrated in an
external event loop.

The two handles own the queue jointly: the buffer is dropped only after both
are released, and values never dequeued are cleaned up through [Cleanable].
*/
package fastspsc
