package internal

import (
	"context"
	"sync/atomic"
	"time"
)

// Stats counts delivered items and bytes and logs the rate
// once per interval.
type Stats struct {
	l *Logger

	interval time.Duration

	itemCount atomic.Uint64
	byteCount atomic.Uint64

	totalItems atomic.Uint64
}

func NewStats(l *Logger, interval time.Duration) *Stats {
	if interval <= 0 {
		interval = time.Second
	}

	return &Stats{
		l: l,

		interval: interval,
	}
}

// Run logs the rates until ctx is done.
func (s *Stats) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			itemCount := s.itemCount.Swap(0)
			byteCount := s.byteCount.Swap(0)

			if itemCount == 0 && byteCount == 0 {
				continue
			}

			perSec := float64(time.Second) / float64(s.interval)
			s.l.Info("stats",
				"items_per_sec", uint64(float64(itemCount)*perSec),
				"bytes_per_sec", uint64(float64(byteCount)*perSec),
				"total_items", s.totalItems.Load(),
			)
		}
	}
}

func (s *Stats) IncrementItemCount() {
	s.itemCount.Add(1)
	s.totalItems.Add(1)
}

func (s *Stats) IncrementByteCountBy(n int) {
	s.byteCount.Add(uint64(n))
}

func (s *Stats) TotalItems() uint64 {
	return s.totalItems.Load()
}
