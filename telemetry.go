package fastspsc

import (
	"github.com/squadracorsepolito/fastspsc/internal"
	"go.opentelemetry.io/otel/metric"
)

const telemetryKind = "spsc"

// queueTelemetry reports the queue cursors on metric collection,
// nothing is recorded on the hot path.
type queueTelemetry struct {
	tel *internal.Telemetry

	unregister func()
}

func newQueueTelemetry[V any](name string, q *queue[V]) *queueTelemetry {
	tel := internal.NewTelemetry(telemetryKind, name)

	enqueued := tel.NewCounter("enqueued", metric.WithDescription("values enqueued since creation"))
	dequeued := tel.NewCounter("dequeued", metric.WithDescription("values dequeued since creation"))
	depth := tel.NewGauge("depth", metric.WithDescription("values waiting to be dequeued"))
	capacity := tel.NewGauge("capacity", metric.WithDescription("number of slots"))

	unregister := tel.Observe(func() []internal.Observation {
		read := q.readNext.Load()
		write := q.writeNext.Load()

		return []internal.Observation{
			{Instrument: enqueued, Value: int64(write)},
			{Instrument: dequeued, Value: int64(read)},
			{Instrument: depth, Value: int64(write - read)},
			{Instrument: capacity, Value: int64(q.capacity)},
		}
	}, enqueued, dequeued, depth, capacity)

	return &queueTelemetry{
		tel:        tel,
		unregister: unregister,
	}
}

func (qt *queueTelemetry) close() {
	qt.unregister()
	qt.tel.LogInfo("queue released")
}
