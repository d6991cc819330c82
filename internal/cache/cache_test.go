package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetRoundTrip(t *testing.T) {
	c := New(true)

	etag := c.Set("rankings:pitching:2024", []byte(`{"count":3}`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("rankings:pitching:2024")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"count":3}`), data)
	assert.Equal(t, etag, gotETag)
}

func TestCache_MissingKey(t *testing.T) {
	c := New(true)

	_, _, ok := c.Get("nothing")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryNotReturned(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_DisabledIsNoOp(t *testing.T) {
	c := New(false)

	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestComputeETag_WeakAndStable(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, `W/"`)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))

	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch(`"stale", `+etag, etag))
	assert.False(t, CheckETagMatch(`"stale"`, etag))
	assert.False(t, CheckETagMatch("", etag))
}

func TestCache_Stats(t *testing.T) {
	c := New(true)
	c.Set("fresh", []byte("v"), time.Minute)
	c.Set("stale", []byte("v"), -time.Second)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}
