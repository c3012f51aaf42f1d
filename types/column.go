// Package types provides column descriptors for mapped column families.
//
// A Column describes one declared attribute of a mapped row: the default
// value substituted when the column is absent from fetched data, and the
// pack/unpack pair translating between a native value and the raw encoded
// bytes stored in the column family.
package types

import "fmt"

// Column is the descriptor for a single declared column.
// Implementations are immutable and safe for concurrent use.
type Column interface {
	// Default returns the value used when the column is missing from a fetched row.
	Default() any

	// Pack encodes a native value into its raw stored representation.
	Pack(v any) ([]byte, error)

	// Unpack decodes the raw stored representation back into a native value.
	Unpack(data []byte) (any, error)
}

func packTypeError(column string, want string, got any) error {
	return fmt.Errorf("types: %s column cannot pack value of type %T, want %s", column, got, want)
}

func unpackSizeError(column string, want int, got int) error {
	return fmt.Errorf("types: %s column cannot unpack %d bytes, want %d", column, got, want)
}
