package fastspsc

import "errors"

var (
	// ErrInvalidCapacityExponent is returned by [New] when the exponent is out of range.
	ErrInvalidCapacityExponent = errors.New("spsc queue: invalid capacity exponent")
	// ErrFinished is returned when a value is enqueued after the end of the stream.
	ErrFinished = errors.New("spsc queue: stream is finished")
	// ErrReleased is returned when a released handle is used.
	ErrReleased = errors.New("spsc queue: handle is released")
)
