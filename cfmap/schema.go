package cfmap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wfxiang08/pycassa/rowstore"
	"github.com/wfxiang08/pycassa/types"
)

// Schema is the immutable set of declared columns of a mapped row type.
// Build one with a SchemaBuilder; the zero Schema declares no columns and
// is rejected by New.
type Schema struct {
	cols  map[string]types.Column
	names []string // Sorted declared column names.
}

// SchemaBuilder registers (name, descriptor) pairs into a Schema.
// Registration errors are collected and reported by Build.
type SchemaBuilder struct {
	cols map[string]types.Column
	errs []error
}

func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{cols: make(map[string]types.Column)}
}

// Add declares a column. It returns the builder for chaining.
func (b *SchemaBuilder) Add(name string, col types.Column) *SchemaBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("cfmap: column name must not be empty"))
		return b
	}
	if col == nil {
		b.errs = append(b.errs, fmt.Errorf("cfmap: column '%s' has no descriptor", name))
		return b
	}
	if _, exists := b.cols[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("cfmap: column '%s' declared twice", name))
		return b
	}
	b.cols[name] = col
	return b
}

// Build compiles the immutable schema.
func (b *SchemaBuilder) Build() (Schema, error) {
	if err := errors.Join(b.errs...); err != nil {
		return Schema{}, err
	}
	cols := make(map[string]types.Column, len(b.cols))
	names := make([]string, 0, len(b.cols))
	for name, col := range b.cols {
		cols[name] = col
		names = append(names, name)
	}
	sort.Strings(names)
	return Schema{cols: cols, names: names}, nil
}

// Columns returns the declared column names in sorted order.
func (s Schema) Columns() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of declared columns.
func (s Schema) Len() int {
	return len(s.cols)
}

// merge reconciles a fetched raw row against the schema: every declared
// column is seeded with its default, then overwritten with the unpacked
// value of any matching raw column. Raw columns with no declared
// counterpart are dropped. The result's key set always equals the
// schema's key set.
func (s Schema) merge(raw rowstore.RawRow) (Attributes, error) {
	attrs := make(Attributes, len(s.cols))
	for name, col := range s.cols {
		attrs[name] = col.Default()
	}
	for name, data := range raw {
		col, declared := s.cols[name]
		if !declared {
			continue
		}
		v, err := col.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("cfmap: failed to unpack column '%s': %w", name, err)
		}
		attrs[name] = v
	}
	return attrs, nil
}

// flatten packs the named attributes into a raw row. Every name must be
// declared in the schema and present in attrs.
func (s Schema) flatten(attrs Attributes, columns []string) (rowstore.RawRow, error) {
	raw := make(rowstore.RawRow, len(columns))
	for _, name := range columns {
		col, declared := s.cols[name]
		if !declared {
			return nil, fmt.Errorf("cfmap: column '%s' is not declared in the schema", name)
		}
		v, present := attrs[name]
		if !present {
			return nil, fmt.Errorf("cfmap: instance has no value for column '%s'", name)
		}
		data, err := col.Pack(v)
		if err != nil {
			return nil, fmt.Errorf("cfmap: failed to pack column '%s': %w", name, err)
		}
		raw[name] = data
	}
	return raw, nil
}
