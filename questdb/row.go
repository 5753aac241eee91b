package questdb

import (
	"math/big"
	"time"
)

type ColumnType int

const (
	ColumnTypeBool ColumnType = iota
	ColumnTypeInt
	ColumnTypeLong
	ColumnTypeFloat
	ColumnTypeSymbol
	ColumnTypeString
	ColumnTypeTimestamp
)

func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeBool:
		return "bool"
	case ColumnTypeInt:
		return "int"
	case ColumnTypeLong:
		return "long"
	case ColumnTypeFloat:
		return "float"
	case ColumnTypeSymbol:
		return "symbol"
	case ColumnTypeString:
		return "string"
	case ColumnTypeTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

type Column struct {
	Name  string
	Type  ColumnType
	Value any
}

func newColumn(name string, typ ColumnType, value any) *Column {
	return &Column{
		Name:  name,
		Type:  typ,
		Value: value,
	}
}

func NewBoolColumn(name string, value bool) *Column {
	return newColumn(name, ColumnTypeBool, value)
}

func NewIntColumn(name string, value int64) *Column {
	return newColumn(name, ColumnTypeInt, value)
}

func NewLongColumn(name string, value *big.Int) *Column {
	return newColumn(name, ColumnTypeLong, value)
}

func NewFloatColumn(name string, value float64) *Column {
	return newColumn(name, ColumnTypeFloat, value)
}

func NewSymbolColumn(name string, value string) *Column {
	return newColumn(name, ColumnTypeSymbol, value)
}

func NewStringColumn(name string, value string) *Column {
	return newColumn(name, ColumnTypeString, value)
}

func NewTimestampColumn(name string, value time.Time) *Column {
	return newColumn(name, ColumnTypeTimestamp, value)
}

// Row is a single line sent to QuestDB.
// A zero Timestamp lets the server assign it.
type Row struct {
	Timestamp time.Time
	Columns   []*Column
}

func NewRow(columns ...*Column) *Row {
	return &Row{
		Columns: columns,
	}
}

func (r *Row) AddColumn(column *Column) {
	if column != nil {
		r.Columns = append(r.Columns, column)
	}
}

// RowFunc converts a dequeued value into a row.
// Returning nil skips the value.
type RowFunc[V any] func(item V) *Row
