package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/wfxiang08/pycassa/rowstore"
)

// rangeIter walks the family's key index with ZRANGEBYLEX and fetches one
// row hash per step. Keys are pulled in batches; rows are never buffered.
type rangeIter struct {
	ctx  context.Context
	c    *Client
	opts rowstore.ReadOptions

	min       string // ZRANGEBYLEX lower bound of the next batch.
	max       string // ZRANGEBYLEX upper bound of the range.
	remaining int

	batch []string
	pos   int

	cur  rowstore.KeyedRow
	err  error
	done bool
}

func (it *rangeIter) Next() bool {
	for {
		if it.err != nil || it.done {
			return false
		}
		if it.remaining == 0 {
			it.done = true
			return false
		}
		if it.pos >= len(it.batch) && !it.fetchBatch() {
			return false
		}
		key := it.batch[it.pos]
		it.pos++

		row, err := it.c.fetchRow(it.ctx, key, it.opts)
		if errors.Is(err, rowstore.ErrRowNotFound) {
			continue // Index entry whose row holds no matching columns.
		}
		if err != nil {
			it.err = err
			return false
		}
		it.remaining--
		it.cur = rowstore.KeyedRow{Key: key, Row: row}
		return true
	}
}

func (it *rangeIter) Item() rowstore.KeyedRow {
	return it.cur
}

func (it *rangeIter) Err() error {
	return it.err
}

func (it *rangeIter) fetchBatch() bool {
	count := rangeBatchSize
	if it.remaining < count {
		count = it.remaining
	}
	keys, err := it.c.rs.ZRangeByLex(it.ctx, indexKey(it.c.family), &redis.ZRangeBy{
		Min:   it.min,
		Max:   it.max,
		Count: int64(count),
	}).Result()
	if err != nil {
		it.err = fmt.Errorf("redisstore: failed to scan key range: %w", err)
		return false
	}
	if len(keys) == 0 {
		it.done = true
		return false
	}
	it.batch = keys
	it.pos = 0
	it.min = "(" + keys[len(keys)-1] // Resume after the batch's last key.
	return true
}
