package types

import (
	"encoding/binary"
	"math"
	"time"
)

// Bytes returns a descriptor that stores raw bytes without conversion.
func Bytes(def []byte) Column {
	return bytesColumn{def: def}
}

type bytesColumn struct {
	def []byte
}

func (c bytesColumn) Default() any { return c.def }

func (c bytesColumn) Pack(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, packTypeError("bytes", "[]byte", v)
	}
	return b, nil
}

func (c bytesColumn) Unpack(data []byte) (any, error) {
	return data, nil
}

// UTF8 returns a descriptor that stores a string as UTF-8 bytes.
func UTF8(def string) Column {
	return utf8Column{def: def}
}

type utf8Column struct {
	def string
}

func (c utf8Column) Default() any { return c.def }

func (c utf8Column) Pack(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, packTypeError("utf8", "string", v)
	}
	return []byte(s), nil
}

func (c utf8Column) Unpack(data []byte) (any, error) {
	return string(data), nil
}

// Long returns a descriptor that stores an int64 as 8 big-endian bytes.
// Pack also accepts a plain int for convenience.
func Long(def int64) Column {
	return longColumn{def: def}
}

type longColumn struct {
	def int64
}

func (c longColumn) Default() any { return c.def }

func (c longColumn) Pack(v any) ([]byte, error) {
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case int:
		n = int64(t)
	default:
		return nil, packTypeError("long", "int64", v)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b, nil
}

func (c longColumn) Unpack(data []byte) (any, error) {
	if len(data) != 8 {
		return nil, unpackSizeError("long", 8, len(data))
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// Double returns a descriptor that stores a float64 as 8 big-endian IEEE 754 bytes.
func Double(def float64) Column {
	return doubleColumn{def: def}
}

type doubleColumn struct {
	def float64
}

func (c doubleColumn) Default() any { return c.def }

func (c doubleColumn) Pack(v any) ([]byte, error) {
	f, ok := v.(float64)
	if !ok {
		return nil, packTypeError("double", "float64", v)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
	return b, nil
}

func (c doubleColumn) Unpack(data []byte) (any, error) {
	if len(data) != 8 {
		return nil, unpackSizeError("double", 8, len(data))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
}

// Bool returns a descriptor that stores a bool as a single 0/1 byte.
func Bool(def bool) Column {
	return boolColumn{def: def}
}

type boolColumn struct {
	def bool
}

func (c boolColumn) Default() any { return c.def }

func (c boolColumn) Pack(v any) ([]byte, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, packTypeError("bool", "bool", v)
	}
	if b {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (c boolColumn) Unpack(data []byte) (any, error) {
	if len(data) != 1 {
		return nil, unpackSizeError("bool", 1, len(data))
	}
	return data[0] != 0, nil
}

// Time returns a descriptor that stores a time.Time as 8 big-endian bytes
// of microseconds since the Unix epoch. Sub-microsecond precision is lost.
func Time(def time.Time) Column {
	return timeColumn{def: def}
}

type timeColumn struct {
	def time.Time
}

func (c timeColumn) Default() any { return c.def }

func (c timeColumn) Pack(v any) ([]byte, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, packTypeError("time", "time.Time", v)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixMicro()))
	return b, nil
}

func (c timeColumn) Unpack(data []byte) (any, error) {
	if len(data) != 8 {
		return nil, unpackSizeError("time", 8, len(data))
	}
	return time.UnixMicro(int64(binary.BigEndian.Uint64(data))).UTC(), nil
}
