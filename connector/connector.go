package connector

import "errors"

// ErrClosed is returned by Write after Close and by Read
// once the connector is closed and drained.
var ErrClosed = errors.New("connector: connector is closed")

// Connector moves items from one writer goroutine to one reader goroutine.
type Connector[T any] interface {
	Write(item T) error
	Read() (T, error)
	Close()
}
