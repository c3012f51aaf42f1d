// Package cfmap maps rows of a sparse column-family store to typed
// instances. A ColumnFamilyMap reconciles a declared schema against
// fetched raw columns: declared columns missing from storage take their
// descriptor's default, stored columns missing from the schema are
// dropped, and the result is handed to the instance type's FromRow.
//
// The engine holds no mutable state beyond its immutable schema snapshot
// and adds no synchronization of its own; it is safe for concurrent use
// whenever the underlying store is.
package cfmap

import (
	"context"
	"errors"

	"github.com/wfxiang08/pycassa/rowstore"
)

// Result is the outcome of mapping one fetched row. Exactly one field is
// populated: Instance for standard column families and for reads scoped
// to a single super column, SuperColumns for unscoped reads of a
// super-column family, keyed by super column name.
type Result[T any, PT MappableInstance[T]] struct {
	Instance     PT
	SuperColumns map[string]PT
}

// ColumnFamilyMap is the mapping engine tying an instance type to one
// column family of a row store.
type ColumnFamilyMap[T any, PT MappableInstance[T]] struct {
	store  rowstore.Store
	schema Schema
	super  bool
}

// New creates a mapping engine for the store's column family. The
// family's super-column mode is read once here and gates all branching
// thereafter.
func New[T any, PT MappableInstance[T]](store rowstore.Store, schema Schema) (*ColumnFamilyMap[T, PT], error) {
	if store == nil {
		return nil, errors.New("cfmap: store must not be nil")
	}
	if schema.Len() == 0 {
		return nil, errors.New("cfmap: schema must declare at least one column")
	}
	return &ColumnFamilyMap[T, PT]{
		store:  store,
		schema: schema,
		super:  store.Super(),
	}, nil
}

// Schema returns the engine's immutable schema snapshot.
func (m *ColumnFamilyMap[T, PT]) Schema() Schema {
	return m.schema
}

// Get fetches one row and maps it. For a super-column family read without
// WithSuperColumn, the result holds one instance per present super
// column; otherwise it holds a single instance.
func (m *ColumnFamilyMap[T, PT]) Get(ctx context.Context, key string, opts ...ReadOption) (Result[T, PT], error) {
	o := m.readOptions(opts)
	row, err := m.store.Get(ctx, key, o.ro)
	if err != nil {
		return Result[T, PT]{}, err
	}
	return m.mapRow(key, row, o)
}

// Multiget fetches multiple rows, applying Get's per-row mapping
// independently per key. Keys missing from the store are omitted.
func (m *ColumnFamilyMap[T, PT]) Multiget(ctx context.Context, keys []string, opts ...ReadOption) (map[string]Result[T, PT], error) {
	o := m.readOptions(opts)
	rows, err := m.store.Multiget(ctx, keys, o.ro)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]Result[T, PT], len(rows))
	for key, row := range rows {
		res, err := m.mapRow(key, row, o)
		if err != nil {
			return nil, err
		}
		ret[key] = res
	}
	return ret, nil
}

// GetCount returns the store's column count for the key. No mapping
// applies; options pass through unmodified.
func (m *ColumnFamilyMap[T, PT]) GetCount(ctx context.Context, key string, opts ...ReadOption) (int, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	return m.store.GetCount(ctx, key, o.ro)
}

// GetRange lazily iterates rows in key order between start and finish
// inclusive, yielding at most rowCount mapped rows. Each element is
// mapped on demand as the store produces it; nothing is buffered.
func (m *ColumnFamilyMap[T, PT]) GetRange(ctx context.Context, start, finish string, rowCount int, opts ...ReadOption) *RangeIter[T, PT] {
	o := m.readOptions(opts)
	return &RangeIter[T, PT]{
		m:    m,
		it:   m.store.GetRange(ctx, start, finish, rowCount, o.ro),
		opts: o,
	}
}

// Insert flattens the instance into raw columns and writes them under the
// instance's key. An empty columns slice writes every declared column;
// otherwise only the named ones are packed and sent. For super-column
// families the columns are written under the instance's super column. It
// returns the store's write timestamp.
func (m *ColumnFamilyMap[T, PT]) Insert(ctx context.Context, instance PT, columns []string) (int64, error) {
	attrs, err := instance.ToRow()
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		columns = m.schema.Columns()
	}
	raw, err := m.schema.flatten(attrs, columns)
	if err != nil {
		return 0, err
	}
	row := rowstore.Row{Columns: raw}
	if m.super {
		row = rowstore.Row{Supers: rowstore.RawSuperRow{instance.GetSuperColumn(): raw}}
	}
	return m.store.Insert(ctx, instance.GetKey(), row, rowstore.WriteOptions{})
}

// Remove deletes the instance's row, or only the named column when column
// is non-empty. For super-column families the instance's entire super
// column is removed and the column argument has no effect.
func (m *ColumnFamilyMap[T, PT]) Remove(ctx context.Context, instance PT, column string) (int64, error) {
	if m.super {
		return m.store.Remove(ctx, instance.GetKey(), instance.GetSuperColumn(), rowstore.WriteOptions{})
	}
	return m.store.Remove(ctx, instance.GetKey(), column, rowstore.WriteOptions{})
}

// readOptions applies the caller's options and, for standard families
// with no explicit column restriction, narrows the fetch to the schema's
// declared columns.
func (m *ColumnFamilyMap[T, PT]) readOptions(opts []ReadOption) readOptions {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasCols && !m.super {
		o.ro.Columns = m.schema.Columns()
	}
	return o
}

// mapRow turns one fetched row into a Result, branching on the family
// mode read at construction.
func (m *ColumnFamilyMap[T, PT]) mapRow(key string, row rowstore.Row, o readOptions) (Result[T, PT], error) {
	if m.super && !o.hasSuper {
		instances := make(map[string]PT, len(row.Supers))
		for superColumn, raw := range row.Supers {
			inst, err := m.newInstance(key, superColumn, raw)
			if err != nil {
				return Result[T, PT]{}, err
			}
			instances[superColumn] = inst
		}
		return Result[T, PT]{SuperColumns: instances}, nil
	}
	inst, err := m.newInstance(key, o.ro.SuperColumn, row.Columns)
	if err != nil {
		return Result[T, PT]{}, err
	}
	return Result[T, PT]{Instance: inst}, nil
}

// newInstance merges the raw columns against the schema and populates a
// fresh instance.
func (m *ColumnFamilyMap[T, PT]) newInstance(key, superColumn string, raw rowstore.RawRow) (PT, error) {
	attrs, err := m.schema.merge(raw)
	if err != nil {
		return nil, err
	}
	inst := PT(new(T))
	if err := inst.FromRow(key, superColumn, attrs); err != nil {
		return nil, err
	}
	return inst, nil
}
