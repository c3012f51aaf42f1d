// Package redisstore implements the rowstore.Store interface on top of
// Redis. Each row is a Redis hash; a per-family sorted set of row keys
// makes key-ordered range scans possible through ZRANGEBYLEX.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/wfxiang08/pycassa/rowstore"
)

const rangeBatchSize = 100

// Client is a rowstore.Store for one column family backed by Redis.
// The client is safe for concurrent use.
type Client struct {
	family string
	super  bool
	rs     *redis.Client
	log    zerolog.Logger
}

type Config struct {
	Family string        // Column family name, used as the key namespace.
	Super  bool          // Whether the family stores super columns.
	RS     *redis.Client // Underlying Redis client.
	Logger *zerolog.Logger
}

func (c *Config) validate() error {
	var errGrp []error
	if c.RS == nil {
		errGrp = append(errGrp, errors.New("redis client is required"))
	}
	if err := validateFamily(c.Family); err != nil {
		errGrp = append(errGrp, err)
	}
	return errors.Join(errGrp...)
}

// New creates a new client for the configured column family.
func New(cfg *Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("redisstore: %w", err)
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Client{
		family: cfg.Family,
		super:  cfg.Super,
		rs:     cfg.RS,
		log:    logger,
	}, nil
}

// Super reports whether the column family stores super columns.
func (c *Client) Super() bool {
	return c.super
}

// Get fetches one row. rowstore.ErrRowNotFound is returned when the key
// holds no matching columns.
func (c *Client) Get(ctx context.Context, key string, opts rowstore.ReadOptions) (rowstore.Row, error) {
	c.log.Debug().Str("family", c.family).Str("key", key).Msg("get")
	return c.fetchRow(ctx, key, opts)
}

// Multiget fetches multiple rows in one pipelined round trip. Keys with no
// matching columns are omitted from the result.
func (c *Client) Multiget(ctx context.Context, keys []string, opts rowstore.ReadOptions) (map[string]rowstore.Row, error) {
	c.log.Debug().Str("family", c.family).Int("keys", len(keys)).Msg("multiget")
	if len(keys) == 0 {
		return nil, nil // No-op for empty batch.
	}

	narrowed := !c.super && len(opts.Columns) > 0
	pipe := c.rs.Pipeline()
	cmds := make([]redis.Cmder, len(keys))
	for i, key := range keys {
		if narrowed {
			cmds[i] = pipe.HMGet(ctx, rowKey(c.family, key), opts.Columns...)
		} else {
			cmds[i] = pipe.HGetAll(ctx, rowKey(c.family, key))
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redisstore: failed to read rows: %w", err)
	}

	ret := make(map[string]rowstore.Row, len(keys))
	for i, key := range keys {
		var row rowstore.Row
		var err error
		switch cmd := cmds[i].(type) {
		case *redis.SliceCmd:
			row, err = c.narrowedRow(opts.Columns, cmd.Val())
		case *redis.StringStringMapCmd:
			row, err = c.parseRow(cmd.Val(), opts)
		}
		if errors.Is(err, rowstore.ErrRowNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ret[key] = row
	}
	return ret, nil
}

// GetCount returns the number of columns present for the key, scoped by
// opts the same way Get is. A missing row counts as zero.
func (c *Client) GetCount(ctx context.Context, key string, opts rowstore.ReadOptions) (int, error) {
	c.log.Debug().Str("family", c.family).Str("key", key).Msg("get count")
	row, err := c.fetchRow(ctx, key, opts)
	if errors.Is(err, rowstore.ErrRowNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if row.Supers != nil {
		return len(row.Supers), nil
	}
	return len(row.Columns), nil
}

// GetRange iterates rows of the family in key order between start and
// finish inclusive, yielding at most rowCount rows. rowCount <= 0 applies
// the default bound of 1000 rows. Rows are fetched one at a time as the
// iterator advances.
func (c *Client) GetRange(ctx context.Context, start, finish string, rowCount int, opts rowstore.ReadOptions) rowstore.RowIter {
	c.log.Debug().Str("family", c.family).Str("start", start).Str("finish", finish).Msg("get range")
	if rowCount <= 0 {
		rowCount = 1000 // Enforce max-limit.
	}
	min := "-"
	if start != "" {
		min = "[" + start
	}
	max := "+"
	if finish != "" {
		max = "[" + finish
	}
	return &rangeIter{
		ctx:       ctx,
		c:         c,
		opts:      opts,
		min:       min,
		max:       max,
		remaining: rowCount,
	}
}

// Insert writes the row's columns under key and records the key in the
// family index. Columns already stored but not named in the row are left
// untouched. It returns the write timestamp in microseconds.
func (c *Client) Insert(ctx context.Context, key string, row rowstore.Row, opts rowstore.WriteOptions) (int64, error) {
	c.log.Debug().Str("family", c.family).Str("key", key).Msg("insert")
	if err := validateName("row key", key); err != nil {
		return 0, err
	}

	fields := make(map[string]interface{})
	if c.super {
		for super, cols := range row.Supers {
			if err := validateName("super column", super); err != nil {
				return 0, err
			}
			for col, val := range cols {
				if err := validateName("column", col); err != nil {
					return 0, err
				}
				fields[field(super, col)] = val
			}
		}
	} else {
		for col, val := range row.Columns {
			if err := validateName("column", col); err != nil {
				return 0, err
			}
			fields[col] = val
		}
	}
	if len(fields) == 0 {
		return 0, errors.New("redisstore: insert requires at least one column")
	}

	pipe := c.rs.Pipeline()
	pipe.HSet(ctx, rowKey(c.family, key), fields)
	pipe.ZAdd(ctx, indexKey(c.family), &redis.Z{Score: 0, Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redisstore: failed to write row '%s': %w", key, err)
	}
	return time.Now().UnixMicro(), nil
}

// Remove deletes the whole row when column is empty. Otherwise it deletes
// the named column, or every column under the named super column for
// super-column families. It returns the delete timestamp in microseconds.
func (c *Client) Remove(ctx context.Context, key string, column string, opts rowstore.WriteOptions) (int64, error) {
	c.log.Debug().Str("family", c.family).Str("key", key).Str("column", column).Msg("remove")
	rk := rowKey(c.family, key)

	if column == "" {
		pipe := c.rs.Pipeline()
		pipe.Del(ctx, rk)
		pipe.ZRem(ctx, indexKey(c.family), key)
		if _, err := pipe.Exec(ctx); err != nil {
			return 0, fmt.Errorf("redisstore: failed to remove row '%s': %w", key, err)
		}
		return time.Now().UnixMicro(), nil
	}

	if c.super {
		// column names the super column to drop.
		all, err := c.rs.HKeys(ctx, rk).Result()
		if err != nil {
			return 0, fmt.Errorf("redisstore: failed to read row '%s': %w", key, err)
		}
		var matched []string
		for _, f := range all {
			if super, _, ok := splitField(f); ok && super == column {
				matched = append(matched, f)
			}
		}
		if len(matched) > 0 {
			if err := c.rs.HDel(ctx, rk, matched...).Err(); err != nil {
				return 0, fmt.Errorf("redisstore: failed to remove super column '%s': %w", column, err)
			}
		}
	} else {
		if err := c.rs.HDel(ctx, rk, column).Err(); err != nil {
			return 0, fmt.Errorf("redisstore: failed to remove column '%s': %w", column, err)
		}
	}

	// Redis drops a hash once its last field is deleted; drop the
	// dangling index entry with it.
	exists, err := c.rs.Exists(ctx, rk).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: %w", err)
	}
	if exists == 0 {
		if err := c.rs.ZRem(ctx, indexKey(c.family), key).Err(); err != nil {
			return 0, fmt.Errorf("redisstore: %w", err)
		}
	}
	return time.Now().UnixMicro(), nil
}

// fetchRow reads one row, narrowing the fetch with HMGET when the caller
// restricted the columns of a standard family.
func (c *Client) fetchRow(ctx context.Context, key string, opts rowstore.ReadOptions) (rowstore.Row, error) {
	rk := rowKey(c.family, key)
	if !c.super && len(opts.Columns) > 0 {
		vals, err := c.rs.HMGet(ctx, rk, opts.Columns...).Result()
		if err != nil {
			return rowstore.Row{}, fmt.Errorf("redisstore: failed to read row '%s': %w", key, err)
		}
		return c.narrowedRow(opts.Columns, vals)
	}
	all, err := c.rs.HGetAll(ctx, rk).Result()
	if err != nil {
		return rowstore.Row{}, fmt.Errorf("redisstore: failed to read row '%s': %w", key, err)
	}
	return c.parseRow(all, opts)
}

// narrowedRow builds a row from an HMGET result. Absent columns come back
// as nil values and are dropped.
func (c *Client) narrowedRow(columns []string, vals []interface{}) (rowstore.Row, error) {
	cols := make(rowstore.RawRow, len(columns))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // Column not present.
		}
		cols[columns[i]] = []byte(s)
	}
	if len(cols) == 0 {
		return rowstore.Row{}, rowstore.ErrRowNotFound
	}
	return rowstore.Row{Columns: cols}, nil
}

// parseRow builds a row from an HGETALL result, splitting super-column
// fields and applying any super-column scoping from opts.
func (c *Client) parseRow(all map[string]string, opts rowstore.ReadOptions) (rowstore.Row, error) {
	if !c.super {
		if len(all) == 0 {
			return rowstore.Row{}, rowstore.ErrRowNotFound
		}
		cols := make(rowstore.RawRow, len(all))
		for col, val := range all {
			cols[col] = []byte(val)
		}
		return rowstore.Row{Columns: cols}, nil
	}

	supers := make(rowstore.RawSuperRow)
	for f, val := range all {
		super, col, ok := splitField(f)
		if !ok {
			continue // Not a super-column field.
		}
		sub, found := supers[super]
		if !found {
			sub = make(rowstore.RawRow)
			supers[super] = sub
		}
		sub[col] = []byte(val)
	}

	if opts.SuperColumn != "" {
		sub, found := supers[opts.SuperColumn]
		if !found {
			return rowstore.Row{}, rowstore.ErrRowNotFound
		}
		if len(opts.Columns) > 0 {
			narrowed := make(rowstore.RawRow, len(opts.Columns))
			for _, col := range opts.Columns {
				if val, present := sub[col]; present {
					narrowed[col] = val
				}
			}
			if len(narrowed) == 0 {
				return rowstore.Row{}, rowstore.ErrRowNotFound
			}
			sub = narrowed
		}
		return rowstore.Row{Columns: sub}, nil
	}

	if len(supers) == 0 {
		return rowstore.Row{}, rowstore.ErrRowNotFound
	}
	return rowstore.Row{Supers: supers}, nil
}
