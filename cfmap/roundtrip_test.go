package cfmap

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfxiang08/pycassa/redisstore"
	"github.com/wfxiang08/pycassa/testutil"
)

// Round trips through the Redis-backed store.

func setupRedisUserMap(t *testing.T, super bool) (*ColumnFamilyMap[user, *user], context.Context) {
	t.Helper()
	rsClient, _ := testutil.NewRedisClient(t)
	store, err := redisstore.New(&redisstore.Config{
		Family: "users",
		Super:  super,
		RS:     rsClient,
	})
	require.NoError(t, err)
	return newUserMap(t, store), context.Background()
}

func TestRedisRoundTrip(t *testing.T) {
	t.Run("insert then get returns equal attributes", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, false)
		in := &user{Key: "u1", Age: 30, Name: "sue"}
		ts, err := m.Insert(ctx, in, nil)
		require.NoError(t, err)
		assert.Positive(t, ts)

		res, err := m.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, in, res.Instance)
	})

	t.Run("partial insert never touches the other columns", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, false)
		_, err := m.Insert(ctx, &user{Key: "u1", Age: 30, Name: "sue"}, []string{"age"})
		require.NoError(t, err)

		res, err := m.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(30), res.Instance.Age)
		assert.Equal(t, "", res.Instance.Name, "name was never written")
	})

	t.Run("multiget maps found keys only", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, false)
		for i := 1; i <= 2; i++ {
			_, err := m.Insert(ctx, &user{Key: fmt.Sprintf("u%d", i), Age: int64(i)}, nil)
			require.NoError(t, err)
		}

		ret, err := m.Multiget(ctx, []string{"u1", "u2", "gone"})
		require.NoError(t, err)
		require.Len(t, ret, 2)
		assert.Equal(t, int64(1), ret["u1"].Instance.Age)
		assert.Equal(t, int64(2), ret["u2"].Instance.Age)
	})

	t.Run("range iteration respects bounds and row count", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, false)
		for i := 1; i <= 5; i++ {
			_, err := m.Insert(ctx, &user{Key: fmt.Sprintf("u%d", i), Age: int64(i)}, nil)
			require.NoError(t, err)
		}

		it := m.GetRange(ctx, "u2", "u4", 2)
		var keys []string
		for it.Next() {
			keys = append(keys, it.Key())
		}
		require.NoError(t, it.Err())
		assert.Equal(t, []string{"u2", "u3"}, keys)
	})

	t.Run("remove deletes the row", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, false)
		in := &user{Key: "u1", Age: 30}
		_, err := m.Insert(ctx, in, nil)
		require.NoError(t, err)
		_, err = m.Remove(ctx, in, "")
		require.NoError(t, err)

		n, err := m.GetCount(ctx, "u1")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestRedisSuperRoundTrip(t *testing.T) {
	t.Run("unscoped get maps every super column", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, true)
		_, err := m.Insert(ctx, &user{Key: "u1", SuperColumn: "profile", Age: 30}, nil)
		require.NoError(t, err)
		_, err = m.Insert(ctx, &user{Key: "u1", SuperColumn: "work", Name: "acme"}, nil)
		require.NoError(t, err)

		res, err := m.Get(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, res.SuperColumns, 2)
		assert.Equal(t, int64(30), res.SuperColumns["profile"].Age)
		assert.Equal(t, "acme", res.SuperColumns["work"].Name)
		assert.Equal(t, "work", res.SuperColumns["work"].SuperColumn)
	})

	t.Run("scoped get returns a single instance", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, true)
		_, err := m.Insert(ctx, &user{Key: "u1", SuperColumn: "profile", Age: 30}, nil)
		require.NoError(t, err)

		res, err := m.Get(ctx, "u1", WithSuperColumn("profile"))
		require.NoError(t, err)
		require.NotNil(t, res.Instance)
		assert.Equal(t, "profile", res.Instance.SuperColumn)
		assert.Equal(t, int64(30), res.Instance.Age)
	})

	t.Run("remove drops only the instance's super column", func(t *testing.T) {
		m, ctx := setupRedisUserMap(t, true)
		profile := &user{Key: "u1", SuperColumn: "profile", Age: 30}
		_, err := m.Insert(ctx, profile, nil)
		require.NoError(t, err)
		_, err = m.Insert(ctx, &user{Key: "u1", SuperColumn: "work", Name: "acme"}, nil)
		require.NoError(t, err)

		_, err = m.Remove(ctx, profile, "age")
		require.NoError(t, err)

		res, err := m.Get(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, res.SuperColumns, 1)
		assert.Contains(t, res.SuperColumns, "work")
	})
}
