package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)
	defer c.Close()

	key := c.Key("gosto de programar")
	c.Set(key, []float64{0.1, 0.2, 0.3})

	vec, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 1, c.Len())
}

func TestGetMissing(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)
	defer c.Close()

	vec, ok := c.Get(c.Key("nunca visto"))
	assert.False(t, ok)
	assert.Nil(t, vec)
}

func TestExpiry(t *testing.T) {
	c := NewEmbeddingCache(10 * time.Millisecond)
	defer c.Close()

	key := c.Key("texto")
	c.Set(key, []float64{1})

	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestKeyIsDeterministic(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)
	defer c.Close()

	assert.Equal(t, c.Key("abc"), c.Key("abc"))
	assert.NotEqual(t, c.Key("abc"), c.Key("abd"))
}

func TestOverwrite(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)
	defer c.Close()

	key := c.Key("texto")
	c.Set(key, []float64{1})
	c.Set(key, []float64{2})

	vec, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []float64{2}, vec)
	assert.Equal(t, 1, c.Len())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)
	c.Close()
	c.Close()
}
