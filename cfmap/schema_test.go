package cfmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfxiang08/pycassa/rowstore"
	"github.com/wfxiang08/pycassa/types"
)

func mustPack(t *testing.T, col types.Column, v any) []byte {
	t.Helper()
	data, err := col.Pack(v)
	require.NoError(t, err)
	return data
}

func newUserSchema(t *testing.T) Schema {
	t.Helper()
	schema, err := NewSchemaBuilder().
		Add("age", types.Long(0)).
		Add("name", types.UTF8("")).
		Build()
	require.NoError(t, err)
	return schema
}

func TestSchemaBuilder(t *testing.T) {
	t.Run("declares columns in sorted order", func(t *testing.T) {
		schema := newUserSchema(t)
		assert.Equal(t, []string{"age", "name"}, schema.Columns())
		assert.Equal(t, 2, schema.Len())
	})

	t.Run("rejects duplicate columns", func(t *testing.T) {
		_, err := NewSchemaBuilder().
			Add("age", types.Long(0)).
			Add("age", types.Long(1)).
			Build()
		assert.Error(t, err)
	})

	t.Run("rejects empty names and nil descriptors", func(t *testing.T) {
		_, err := NewSchemaBuilder().Add("", types.Long(0)).Build()
		assert.Error(t, err)
		_, err = NewSchemaBuilder().Add("age", nil).Build()
		assert.Error(t, err)
	})
}

func TestSchemaMerge(t *testing.T) {
	schema := newUserSchema(t)

	t.Run("present columns overwrite defaults", func(t *testing.T) {
		raw := rowstore.RawRow{"age": mustPack(t, types.Long(0), int64(30))}
		attrs, err := schema.merge(raw)
		require.NoError(t, err)
		assert.Equal(t, Attributes{"age": int64(30), "name": ""}, attrs)
	})

	t.Run("result keys always match the schema", func(t *testing.T) {
		for _, raw := range []rowstore.RawRow{
			nil,
			{},
			{"age": mustPack(t, types.Long(0), int64(1))},
			{"age": mustPack(t, types.Long(0), int64(1)), "name": []byte("x"), "extra": []byte("y")},
		} {
			attrs, err := schema.merge(raw)
			require.NoError(t, err)
			assert.Len(t, attrs, schema.Len())
			for _, name := range schema.Columns() {
				assert.Contains(t, attrs, name)
			}
		}
	})

	t.Run("missing columns take their defaults", func(t *testing.T) {
		attrs, err := schema.merge(rowstore.RawRow{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), attrs["age"])
		assert.Equal(t, "", attrs["name"])
	})

	t.Run("undeclared columns are dropped silently", func(t *testing.T) {
		raw := rowstore.RawRow{"unmodeled": []byte("whatever")}
		attrs, err := schema.merge(raw)
		require.NoError(t, err)
		assert.NotContains(t, attrs, "unmodeled")
		assert.Equal(t, Attributes{"age": int64(0), "name": ""}, attrs)
	})

	t.Run("codec failures surface unchanged", func(t *testing.T) {
		raw := rowstore.RawRow{"age": []byte{1, 2}} // Not 8 bytes.
		_, err := schema.merge(raw)
		assert.Error(t, err)
	})
}

func TestSchemaFlatten(t *testing.T) {
	schema := newUserSchema(t)
	attrs := Attributes{"age": int64(30), "name": "sue"}

	t.Run("packs the named columns only", func(t *testing.T) {
		raw, err := schema.flatten(attrs, []string{"age"})
		require.NoError(t, err)
		assert.Len(t, raw, 1)
		assert.Equal(t, mustPack(t, types.Long(0), int64(30)), raw["age"])
	})

	t.Run("fails on an undeclared column", func(t *testing.T) {
		_, err := schema.flatten(attrs, []string{"height"})
		assert.Error(t, err)
	})

	t.Run("fails on a missing attribute", func(t *testing.T) {
		_, err := schema.flatten(Attributes{"age": int64(30)}, []string{"age", "name"})
		assert.Error(t, err)
	})

	t.Run("fails on a mistyped attribute", func(t *testing.T) {
		_, err := schema.flatten(Attributes{"age": "thirty", "name": "sue"}, []string{"age"})
		assert.Error(t, err)
	})
}
