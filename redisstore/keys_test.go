package redisstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "cf:users:u1", rowKey("users", "u1"))
	assert.Equal(t, "cf:users:~index", indexKey("users"))
}

func TestFieldEncoding(t *testing.T) {
	assert.Equal(t, "age", field("", "age"))
	assert.Equal(t, "profile\x1fage", field("profile", "age"))

	super, col, ok := splitField("profile\x1fage")
	assert.True(t, ok)
	assert.Equal(t, "profile", super)
	assert.Equal(t, "age", col)

	_, _, ok = splitField("plain")
	assert.False(t, ok)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validateName("column", "age"))
	assert.Error(t, validateName("column", ""))
	assert.Error(t, validateName("column", "a\x1fb"))
	assert.Error(t, validateName("column", strings.Repeat("x", nameMaxLength+1)))

	assert.NoError(t, validateFamily("users"))
	assert.Error(t, validateFamily("us:ers"))
}
