package embedding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PutThenGet(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("hash", []float32{0.1, 0.2})

	got, ok := c.Get("hash")
	require.True(t, ok)
	assert.Equal(t, []float32{0.1, 0.2}, got)
}

func TestCache_MissOnUnknownHash(t *testing.T) {
	c := NewCache(time.Hour)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryIsEvicted(t *testing.T) {
	c := NewCache(time.Hour)
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put("hash", []float32{0.5})
	current = current.Add(2 * time.Hour)

	_, ok := c.Get("hash")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_FreshEntrySurvivesWithinTTL(t *testing.T) {
	c := NewCache(time.Hour)
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put("hash", []float32{0.5})
	current = current.Add(30 * time.Minute)

	_, ok := c.Get("hash")
	assert.True(t, ok)
}

func TestCache_PutReplacesExisting(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("hash", []float32{1})
	c.Put("hash", []float32{2})

	got, ok := c.Get("hash")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("hash", []float32{1, 2})

	first, _ := c.Get("hash")
	first[0] = 99

	second, _ := c.Get("hash")
	assert.Equal(t, []float32{1, 2}, second)
}

func TestCache_StatsCountHitsAndMisses(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("hash", []float32{1})

	c.Get("hash")
	c.Get("hash")
	c.Get("missing")

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCache_NonPositiveTTLFallsBackToDefault(t *testing.T) {
	c := NewCache(0)
	assert.Equal(t, DefaultCacheTTL, c.ttl)
}
