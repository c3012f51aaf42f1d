package cfmap

import "github.com/wfxiang08/pycassa/rowstore"

// ReadOption adjusts a single read operation.
type ReadOption func(*readOptions)

type readOptions struct {
	ro       rowstore.ReadOptions
	hasCols  bool
	hasSuper bool
}

// WithColumns restricts the read to the named columns. Without it, reads
// of a standard column family are narrowed to the schema's declared
// columns.
func WithColumns(columns ...string) ReadOption {
	return func(o *readOptions) {
		o.ro.Columns = columns
		o.hasCols = true
	}
}

// WithSuperColumn scopes the read to a single super column. Only
// meaningful for super-column families.
func WithSuperColumn(name string) ReadOption {
	return func(o *readOptions) {
		o.ro.SuperColumn = name
		o.hasSuper = true
	}
}

// WithConsistency passes a consistency hint through to the store.
func WithConsistency(cl rowstore.ConsistencyLevel) ReadOption {
	return func(o *readOptions) {
		o.ro.Consistency = cl
	}
}
