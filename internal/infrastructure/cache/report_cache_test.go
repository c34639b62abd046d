package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestCache() *ReportCache {
	return NewReportCache(zap.NewNop())
}

func TestReportCache_SetGet(t *testing.T) {
	c := newTestCache()

	c.Set("sales:2026-01", []byte("report"), time.Minute)

	got, ok := c.Get("sales:2026-01")
	assert.True(t, ok)
	assert.Equal(t, []byte("report"), got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestReportCache_TTLExpiry(t *testing.T) {
	c := newTestCache()

	c.Set("sales:2026-01", []byte("report"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("sales:2026-01")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestReportCache_InvalidatePrefix(t *testing.T) {
	c := newTestCache()

	c.Set("sales:2026-01", []byte("a"), time.Minute)
	c.Set("sales:2026-02", []byte("b"), time.Minute)
	c.Set("stock:levels", []byte("c"), time.Minute)

	c.Invalidate("sales*")

	_, ok := c.Get("sales:2026-01")
	assert.False(t, ok)
	_, ok = c.Get("sales:2026-02")
	assert.False(t, ok)
	_, ok = c.Get("stock:levels")
	assert.True(t, ok)
}

func TestReportCache_InvalidateExact(t *testing.T) {
	c := newTestCache()

	c.Set("stock:levels", []byte("a"), time.Minute)
	c.Set("stock:low", []byte("b"), time.Minute)

	c.Invalidate("stock:levels")

	_, ok := c.Get("stock:levels")
	assert.False(t, ok)
	_, ok = c.Get("stock:low")
	assert.True(t, ok)
}

func TestReportCache_Purge(t *testing.T) {
	c := newTestCache()

	c.Set("old", []byte("a"), 5*time.Millisecond)
	c.Set("fresh", []byte("b"), time.Minute)
	time.Sleep(10 * time.Millisecond)

	dropped := c.Purge()
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, c.Len())
}

func TestReportCache_SetZeroTTL(t *testing.T) {
	c := newTestCache()

	c.Set("key", []byte("a"), 0)

	_, ok := c.Get("key")
	assert.False(t, ok)
}
