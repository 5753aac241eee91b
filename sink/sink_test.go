package sink

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/squadracorsepolito/fastspsc"
	"github.com/squadracorsepolito/fastspsc/internal"
	"github.com/stretchr/testify/assert"
)

type collector[V any] struct {
	items  []V
	failAt int
	closed bool
}

func (c *collector[V]) Deliver(_ context.Context, item V) error {
	if c.failAt > 0 && len(c.items) == c.failAt {
		return errors.New("delivery failed")
	}
	c.items = append(c.items, item)
	return nil
}

func (c *collector[V]) Close(_ context.Context) error {
	c.closed = true
	return nil
}

func Test_Drain(t *testing.T) {
	assert := assert.New(t)

	prod, cons := fastspsc.MustNew[int](1)

	go func() {
		for i := range 60 {
			assert.NoError(prod.Enqueue(i))
		}
		prod.Release()
	}()

	out := &collector[int]{}
	delivered, err := Drain(context.Background(), cons, out, nil)
	assert.NoError(err)
	assert.Equal(60, delivered)

	for i, item := range out.items {
		assert.Equal(i, item)
	}
}

func Test_Drain_ContextDone(t *testing.T) {
	assert := assert.New(t)

	// The producer never finishes the stream
	prod, cons := fastspsc.MustNew[int](2)
	assert.NoError(prod.Enqueue(1))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := &collector[int]{}
	delivered, err := Drain(ctx, cons, out, fastspsc.SpinWait{YieldInterval: 1})
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.Equal(1, delivered)
}

func Test_Drain_DeliveryError(t *testing.T) {
	assert := assert.New(t)

	prod, cons := fastspsc.MustNew[int](3)
	for i := range 5 {
		assert.NoError(prod.Enqueue(i))
	}
	prod.Finish()

	out := &collector[int]{failAt: 2}
	delivered, err := Drain(context.Background(), cons, out, nil)
	assert.Error(err)
	assert.Equal(2, delivered)

	// The failed value is lost, the following ones are still queued
	assert.Equal(2, cons.Len())
}

func Test_Logger(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	out := NewLogger[string]("child", internal.NewTextHandler(buf, slog.LevelInfo, true))

	prod, cons := fastspsc.MustNew[string](1)
	go func() {
		for i := range 10 {
			assert.NoError(prod.Enqueue(strconv.Itoa(i)))
		}
		prod.Finish()
	}()

	delivered, err := Drain(context.Background(), cons, out, nil)
	assert.NoError(err)
	assert.Equal(10, delivered)
	assert.Equal(uint64(10), out.Received())

	assert.NoError(out.Close(context.Background()))

	logs := buf.String()
	assert.Contains(logs, "received")
	assert.Contains(logs, "value=9")
	assert.Contains(logs, "sink closed")
}

type syncBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.String()
}

func Test_Logger_RunStats(t *testing.T) {
	assert := assert.New(t)

	buf := &syncBuffer{}
	out := NewLogger[string]("child", internal.NewTextHandler(buf, slog.LevelInfo, true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		out.RunStats(ctx)
	}()

	for _, item := range []string{"a", "bb", "ccc"} {
		assert.NoError(out.Deliver(ctx, item))
	}

	assert.Eventually(func() bool {
		return strings.Contains(buf.String(), "total_items=3")
	}, 3*time.Second, 10*time.Millisecond)

	logs := buf.String()
	assert.Contains(logs, "stats")
	assert.Contains(logs, "bytes_per_sec=6")

	cancel()
	<-done
}
