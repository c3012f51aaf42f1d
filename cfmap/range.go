package cfmap

import "github.com/wfxiang08/pycassa/rowstore"

// RangeIter lazily maps the rows of a key-range scan. It is single-pass
// and not safe for concurrent use; abandoning it early is safe.
type RangeIter[T any, PT MappableInstance[T]] struct {
	m    *ColumnFamilyMap[T, PT]
	it   rowstore.RowIter
	opts readOptions

	key string
	cur Result[T, PT]
	err error
}

// Next advances to the next mapped row, reporting false at the end of the
// range or on the first error.
func (it *RangeIter[T, PT]) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.it.Next() {
		it.err = it.it.Err()
		return false
	}
	item := it.it.Item()
	res, err := it.m.mapRow(item.Key, item.Row, it.opts)
	if err != nil {
		it.err = err
		return false
	}
	it.key = item.Key
	it.cur = res
	return true
}

// Key returns the current row's key. Valid only after a true Next.
func (it *RangeIter[T, PT]) Key() string {
	return it.key
}

// Result returns the current mapped row. Valid only after a true Next.
func (it *RangeIter[T, PT]) Result() Result[T, PT] {
	return it.cur
}

// Err returns the error that stopped iteration, if any.
func (it *RangeIter[T, PT]) Err() error {
	return it.err
}
