package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiterRefills(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := newRateLimiter(RateLimitConfig{RequestsPerWindow: 60, Window: time.Minute, Burst: 2}, clk.now)

	ok, _ := rl.allow("a")
	require.True(t, ok)
	ok, _ = rl.allow("a")
	require.True(t, ok)

	ok, wait := rl.allow("a")
	require.False(t, ok)
	require.Equal(t, time.Second, wait)

	// A refused request must not eat into the next token.
	clk.advance(time.Second)
	ok, _ = rl.allow("a")
	require.True(t, ok)
}

func TestRateLimiterSweepsIdleBuckets(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := newRateLimiter(RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}, clk.now)

	rl.allow("old")
	clk.advance(idleAfter / 2)
	rl.allow("recent")
	require.Equal(t, 2, rl.size())

	clk.advance(idleAfter/2 + time.Minute)
	rl.allow("new")

	require.Equal(t, 2, rl.size(), "only the idle bucket is dropped")
	rl.mu.Lock()
	_, hasOld := rl.buckets["old"]
	rl.mu.Unlock()
	require.False(t, hasOld)
}
