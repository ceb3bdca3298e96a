package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	_, ok := kv.Get("missing")
	assert.False(t, ok)

	kv.Set("a", "1")
	kv.Set("b", "2")
	kv.Set("a", "3")

	v, ok := kv.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	assert.ElementsMatch(t, []string{"a", "b"}, kv.Keys())

	kv.Remove("a")
	_, ok = kv.Get("a")
	assert.False(t, ok)

	// Removing an absent key is a no-op, like localStorage.removeItem
	kv.Remove("a")
	assert.ElementsMatch(t, []string{"b"}, kv.Keys())
}
