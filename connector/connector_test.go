package connector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/squadracorsepolito/fastspsc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const (
	capacityExponent = 11
	itemCount        = 1_000_000
)

var connKinds = []string{"spsc", "channel"}

func getConnectorFromKind[T any](t testing.TB, connKind string, capacityExponent int) Connector[T] {
	switch connKind {
	case "spsc":
		conn, err := NewSPSC[T](capacityExponent)
		require.NoError(t, err)
		return conn
	case "channel":
		return NewChannel[T](uint64(1) << capacityExponent)
	}

	t.Fatalf("unknown connector kind %q", connKind)
	return nil
}

func Test_Connector_SingleProducerConsumer(t *testing.T) {
	for _, connKind := range connKinds {
		t.Run(connKind, func(t *testing.T) {
			connector := getConnectorFromKind[int](t, connKind, capacityExponent)
			testSingleProducerConsumer(t, connector, itemCount)
		})
	}
}

func testSingleProducerConsumer(t *testing.T, connector Connector[int], itemCount int) {
	assert := assert.New(t)

	startTime := time.Now()

	received := make([]int, 0, itemCount)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()

		// Read until the connector is closed
		for {
			item, err := connector.Read()
			if err != nil {
				assert.ErrorIs(err, ErrClosed)
				return
			}
			received = append(received, item)
		}
	}()

	for i := range itemCount {
		if err := connector.Write(i); err != nil {
			t.Errorf("failed to write item %d: %v", i, err)
			break
		}
	}
	connector.Close()

	wg.Wait()

	// Verify all items were received in order
	assert.Len(received, itemCount)
	for i, item := range received {
		if item != i {
			t.Errorf("FIFO violation at %d: got %d", i, item)
			break
		}
	}

	duration := time.Since(startTime)
	itemsPerSec := int(float64(itemCount) / duration.Seconds())
	t.Logf("Processed %d items in %v (%d items/sec)", itemCount, duration, itemsPerSec)
}

func Test_Connector_WriteAfterClose(t *testing.T) {
	for _, connKind := range connKinds {
		t.Run(connKind, func(t *testing.T) {
			assert := assert.New(t)

			connector := getConnectorFromKind[int](t, connKind, 2)

			assert.NoError(connector.Write(1))
			connector.Close()
			connector.Close()

			assert.ErrorIs(connector.Write(2), ErrClosed)

			// Pending items are still delivered
			item, err := connector.Read()
			assert.NoError(err)
			assert.Equal(1, item)

			_, err = connector.Read()
			assert.True(errors.Is(err, ErrClosed))
		})
	}
}

func Test_SPSC_ReleaseOnClose(t *testing.T) {
	assert := assert.New(t)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	otel.SetMeterProvider(provider)

	// The queue metrics are reported until both sides are released
	isReported := func() bool {
		rm := metricdata.ResourceMetrics{}
		require.NoError(t, reader.Collect(context.Background(), &rm))

		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != "spsc_conn_capacity" {
					continue
				}
				if gauge, ok := m.Data.(metricdata.Gauge[int64]); ok && len(gauge.DataPoints) > 0 {
					return true
				}
			}
		}
		return false
	}

	conn, err := NewSPSC[int](2, fastspsc.WithTelemetry("conn"))
	require.NoError(t, err)

	assert.NoError(conn.Write(1))
	conn.Close()
	assert.True(isReported())

	item, err := conn.Read()
	assert.NoError(err)
	assert.Equal(1, item)
	assert.True(isReported())

	_, err = conn.Read()
	assert.ErrorIs(err, ErrClosed)
	assert.False(isReported())

	_, err = conn.Read()
	assert.ErrorIs(err, ErrClosed)
	assert.ErrorIs(conn.Write(2), ErrClosed)
}

func Test_NewSPSC_InvalidExponent(t *testing.T) {
	conn, err := NewSPSC[int](-1)
	assert.Error(t, err)
	assert.Nil(t, conn)
}

func Benchmark_Connectors(b *testing.B) {
	b.ReportAllocs()

	for _, connKind := range connKinds {
		b.Run("PingPong-"+connKind, func(b *testing.B) {
			benchmarkPingPong(b, connKind)
		})

		b.Run("Stream-"+connKind, func(b *testing.B) {
			benchmarkStream(b, connKind)
		})
	}
}

type dummy struct {
	data []byte
}

func benchmarkPingPong(b *testing.B, connKind string) {
	connector := getConnectorFromKind[*dummy](b, connKind, capacityExponent)

	data := &dummy{
		data: make([]byte, 2048),
	}

	b.ResetTimer()
	for range b.N {
		if err := connector.Write(data); err != nil {
			b.Fatalf("Write error: %v", err)
		}
		if _, err := connector.Read(); err != nil {
			b.Fatalf("Read error: %v", err)
		}
	}
}

func benchmarkStream(b *testing.B, connKind string) {
	connector := getConnectorFromKind[*dummy](b, connKind, capacityExponent)

	data := &dummy{
		data: make([]byte, 2048),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, err := connector.Read(); err != nil {
				return
			}
		}
	}()

	b.ResetTimer()
	for range b.N {
		if err := connector.Write(data); err != nil {
			b.Fatalf("Write error: %v", err)
		}
	}
	connector.Close()

	<-done
}
