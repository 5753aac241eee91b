package internal

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Stats(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	l := NewLoggerWithHandler("sink", "test", NewTextHandler(buf, slog.LevelInfo, true))

	s := NewStats(l, 10*time.Millisecond)
	for range 5 {
		s.IncrementItemCount()
	}
	s.IncrementByteCountBy(64)
	assert.Equal(uint64(5), s.TotalItems())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	<-done

	logs := buf.String()
	assert.Contains(logs, "stats")
	assert.Contains(logs, "items_per_sec=500")
	assert.Contains(logs, "bytes_per_sec=6400")
	assert.Contains(logs, "total_items=5")

	// Rates are reset after each report
	assert.Equal(1, bytes.Count(buf.Bytes(), []byte("items_per_sec")))
}
