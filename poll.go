package fastspsc

// PollStatus is the outcome of [Consumer.TryDequeue].
type PollStatus uint8

const (
	// PollEmpty means no value is available but the stream is still open.
	PollEmpty PollStatus = iota
	// PollEnded means the stream is finished and drained.
	PollEnded
	// PollValue means a value was dequeued.
	PollValue
)

func (ps PollStatus) String() string {
	switch ps {
	case PollEmpty:
		return "empty"
	case PollEnded:
		return "ended"
	case PollValue:
		return "value"
	default:
		return "unknown"
	}
}

// Poll is the result of a single non-blocking dequeue.
// Value is set only when Status is [PollValue].
type Poll[V any] struct {
	Status PollStatus
	Value  V
}
