package fastspsc

import "runtime"

const defaultYieldInterval = 64

// WaitStrategy is what a blocking call does between two failed polls.
// attempt counts the failed polls of the current call, starting at 0.
type WaitStrategy interface {
	Wait(attempt int)
}

// BusyWait spins without ever giving a hint to the scheduler.
type BusyWait struct{}

func (BusyWait) Wait(int) {}

// SpinWait spins and yields the processor to other goroutines
// every YieldInterval failed polls.
type SpinWait struct {
	// YieldInterval is the number of polls between two yields, zero means 64.
	YieldInterval int
}

func (sw SpinWait) Wait(attempt int) {
	if sw.shouldYield(attempt) {
		runtime.Gosched()
	}
}

func (sw SpinWait) shouldYield(attempt int) bool {
	interval := sw.YieldInterval
	if interval <= 0 {
		interval = defaultYieldInterval
	}
	return attempt%interval == interval-1
}
