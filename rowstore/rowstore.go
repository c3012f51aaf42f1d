// Package rowstore defines the client boundary to a sparse column-family
// store: the raw row shapes exchanged with a backend and the Store
// interface the mapping engine consumes. Backends (see the redisstore
// package for one) own connection management, retries and consistency
// negotiation; this package owns only the shapes.
package rowstore

import (
	"context"
	"errors"
	"fmt"
)

var ErrRowNotFound = errors.New("rowstore: row not found")

// RawRow is the store-native representation of a row's columns:
// column name to raw encoded value.
type RawRow map[string][]byte

// RawSuperRow is the store-native representation of a super-column-family
// row: super column name to that super column's columns.
type RawSuperRow map[string]RawRow

// Row is a fetched or to-be-written row. Exactly one side is populated:
// Columns for standard families and for reads scoped to a single super
// column, Supers for unscoped super-column-family rows.
type Row struct {
	Columns RawRow
	Supers  RawSuperRow
}

// KeyedRow is one element of a range scan.
type KeyedRow struct {
	Key string
	Row Row
}

// ConsistencyLevel is a pass-through replication hint. Backends that have
// no notion of tunable consistency ignore it.
type ConsistencyLevel int

const (
	One ConsistencyLevel = iota + 1
	Quorum
	All
)

func (cl ConsistencyLevel) String() string {
	switch cl {
	case One:
		return "ONE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	default:
		return fmt.Sprintf("consistency(%d)", cl)
	}
}

// ReadOptions restrict what a read returns.
//   - Columns, when non-empty, narrows the fetch to the named columns.
//   - SuperColumn, when non-empty, scopes the read to one super column;
//     the store then returns a flat Columns row.
type ReadOptions struct {
	Columns     []string
	SuperColumn string
	Consistency ConsistencyLevel
}

// WriteOptions carry write-side hints.
type WriteOptions struct {
	Consistency ConsistencyLevel
}

// RowIter is a single-pass, forward-only iterator over a key range.
// It is not safe for concurrent use; abandoning it early is safe and
// holds no resources.
type RowIter interface {
	// Next advances to the next row, reporting false at the end of the
	// range or on the first error.
	Next() bool

	// Item returns the current row. Valid only after a true Next.
	Item() KeyedRow

	// Err returns the error that stopped iteration, if any.
	Err() error
}

// Store is a client for one column family of a row store.
// Implementations must be safe for concurrent use.
type Store interface {
	// Super reports whether the column family stores super columns.
	Super() bool

	// Get fetches one row. ErrRowNotFound is returned when the key has no
	// matching columns.
	Get(ctx context.Context, key string, opts ReadOptions) (Row, error)

	// Multiget fetches multiple rows. Keys with no matching columns are
	// omitted from the result.
	Multiget(ctx context.Context, keys []string, opts ReadOptions) (map[string]Row, error)

	// GetCount returns the number of columns present for the key, scoped
	// by opts the same way Get is.
	GetCount(ctx context.Context, key string, opts ReadOptions) (int, error)

	// GetRange iterates rows in key order between start and finish
	// inclusive, yielding at most rowCount rows. An empty start or finish
	// leaves that end of the range unbounded.
	GetRange(ctx context.Context, start, finish string, rowCount int, opts ReadOptions) RowIter

	// Insert writes the row's columns under key and returns the write
	// timestamp in microseconds. Existing columns not named in the row are
	// left untouched.
	Insert(ctx context.Context, key string, row Row, opts WriteOptions) (int64, error)

	// Remove deletes the whole row when column is empty. Otherwise it
	// deletes the named column, or the named super column for
	// super-column families. It returns the delete timestamp in
	// microseconds.
	Remove(ctx context.Context, key string, column string, opts WriteOptions) (int64, error)
}
