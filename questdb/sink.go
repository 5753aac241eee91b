// Package questdb implements a sink that writes dequeued values
// to QuestDB using the InfluxDB line protocol.
package questdb

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	qdb "github.com/questdb/go-questdb-client/v3"
	"github.com/squadracorsepolito/fastspsc/internal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Sink writes every delivered value as a row of a QuestDB table.
type Sink[V any] struct {
	tel *internal.Telemetry

	sender qdb.LineSender
	table  string
	rowFn  RowFunc[V]

	unregister func()

	// Telemetry metrics
	insertedRows atomic.Int64
}

// NewSink connects to the QuestDB server described by cfg over HTTP.
func NewSink[V any](ctx context.Context, cfg *Config, rowFn RowFunc[V]) (*Sink[V], error) {
	sender, err := qdb.NewLineSender(ctx,
		qdb.WithHttp(),
		qdb.WithAddress(cfg.Address),
		qdb.WithAutoFlushRows(cfg.AutoFlushRows),
		qdb.WithRetryTimeout(cfg.RetryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("questdb: failed to create sender: %w", err)
	}

	return NewSinkWithSender(sender, cfg.Table, rowFn), nil
}

// NewSinkWithSender returns a [Sink] using an already configured sender.
func NewSinkWithSender[V any](sender qdb.LineSender, table string, rowFn RowFunc[V]) *Sink[V] {
	if rowFn == nil {
		panic("row function is nil")
	}

	s := &Sink[V]{
		tel: internal.NewTelemetry("sink", "questdb"),

		sender: sender,
		table:  table,
		rowFn:  rowFn,
	}

	s.initMetrics()

	return s
}

func (s *Sink[V]) initMetrics() {
	insertedRows := s.tel.NewCounter("inserted_rows")

	s.unregister = s.tel.Observe(func() []internal.Observation {
		return []internal.Observation{{Instrument: insertedRows, Value: s.insertedRows.Load()}}
	}, insertedRows)
}

func (s *Sink[V]) Deliver(ctx context.Context, item V) error {
	row := s.rowFn(item)
	if row == nil {
		return nil
	}

	ctx, span := s.tel.NewTrace(ctx, "deliver QuestDB row")
	defer span.End()

	if err := s.write(ctx, row); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write row")
		return err
	}

	span.SetAttributes(attribute.Int("column_count", len(row.Columns)))

	// Update metrics
	s.insertedRows.Add(1)

	return nil
}

func (s *Sink[V]) write(ctx context.Context, row *Row) error {
	query := s.sender.Table(s.table)

	// Symbols must precede the other columns
	for _, col := range row.Columns {
		if col.Type == ColumnTypeSymbol {
			query = query.Symbol(col.Name, col.Value.(string))
		}
	}

	for _, col := range row.Columns {
		switch col.Type {
		case ColumnTypeBool:
			query = query.BoolColumn(col.Name, col.Value.(bool))
		case ColumnTypeInt:
			query = query.Int64Column(col.Name, col.Value.(int64))
		case ColumnTypeLong:
			query = query.Long256Column(col.Name, col.Value.(*big.Int))
		case ColumnTypeFloat:
			query = query.Float64Column(col.Name, col.Value.(float64))
		case ColumnTypeString:
			query = query.StringColumn(col.Name, col.Value.(string))
		case ColumnTypeTimestamp:
			query = query.TimestampColumn(col.Name, col.Value.(time.Time))
		}
	}

	if row.Timestamp.IsZero() {
		return query.AtNow(ctx)
	}
	return query.At(ctx, row.Timestamp)
}

// InsertedRows returns the number of rows written so far.
func (s *Sink[V]) InsertedRows() int64 {
	return s.insertedRows.Load()
}

// Close flushes the pending rows and closes the sender.
func (s *Sink[V]) Close(ctx context.Context) error {
	s.unregister()

	// Close the sender
	select {
	case <-ctx.Done():
		return s.sender.Close(context.Background())
	default:
		return s.sender.Close(ctx)
	}
}
