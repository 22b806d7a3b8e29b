package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errUpstream = errors.New("upstream down")

func newTestQuery(t *testing.T) (*Query, *clock) {
	t.Helper()
	clk := &clock{now: time.Unix(1_700_000_000, 0)}
	q := NewQuery(QueryConfig{
		Cache:      NewMemoryQueryCache(time.Hour),
		StaleTime:  time.Minute,
		ServeStale: func(err error) bool { return errors.Is(err, errUpstream) },
		Now:        clk.Now,
	})
	return q, clk
}

func counter(n *atomic.Int32, val []string, err *error) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		n.Add(1)
		if *err != nil {
			return nil, *err
		}
		return val, nil
	}
}

func TestFetchServesFreshEntries(t *testing.T) {
	q, clk := newTestQuery(t)
	ctx := context.Background()
	var calls atomic.Int32
	var fail error
	fetch := counter(&calls, []string{"a", "b"}, &fail)

	got, err := Fetch(ctx, q, "posts:0", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	clk.Advance(59 * time.Second)
	got, err = Fetch(ctx, q, "posts:0", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, int32(1), calls.Load())

	clk.Advance(time.Second)
	_, err = Fetch(ctx, q, "posts:0", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchFallsBackToStaleOnUpstreamFailure(t *testing.T) {
	q, clk := newTestQuery(t)
	ctx := context.Background()
	var calls atomic.Int32
	var fail error
	fetch := counter(&calls, []string{"cached"}, &fail)

	_, err := Fetch(ctx, q, "paper:me", fetch)
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	fail = errUpstream
	got, err := Fetch(ctx, q, "paper:me", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, got)

	fail = errors.New("unauthorized")
	_, err = Fetch(ctx, q, "paper:me", fetch)
	assert.EqualError(t, err, "unauthorized")
}

func TestInvalidateByPrefix(t *testing.T) {
	q, _ := newTestQuery(t)
	ctx := context.Background()
	var calls atomic.Int32
	var fail error
	fetch := counter(&calls, []string{"x"}, &fail)

	for _, key := range []string{Key("s1", "paper"), Key("s1", "friends"), Key("s2", "paper")} {
		_, err := Fetch(ctx, q, key, fetch)
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), calls.Load())

	q.Invalidate(ctx, Key("s1", "paper"))

	_, _ = Fetch(ctx, q, Key("s1", "paper"), fetch)
	_, _ = Fetch(ctx, q, Key("s1", "friends"), fetch)
	_, _ = Fetch(ctx, q, Key("s2", "paper"), fetch)
	assert.Equal(t, int32(4), calls.Load())
}

func TestFetchWithoutCacheAlwaysCallsUpstream(t *testing.T) {
	q := NewQuery(QueryConfig{})
	var calls atomic.Int32
	var fail error
	fetch := counter(&calls, []string{"x"}, &fail)

	for i := 0; i < 3; i++ {
		_, err := Fetch(context.Background(), q, "k", fetch)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
	q.Invalidate(context.Background(), "k")
}

func TestConcurrentFetchesShareOneCall(t *testing.T) {
	q, _ := newTestQuery(t)
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), q, "shared", fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 42, v)
	}
	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestMemoryCacheExpiresAfterGCTime(t *testing.T) {
	clk := &clock{now: time.Unix(0, 0)}
	c := NewMemoryQueryCache(time.Minute).(*memoryQueryCache)
	c.now = clk.Now
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, clk.Now()))
	e, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, e)

	clk.Advance(time.Minute)
	e, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, e)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 50.0, s.HitRate, 0.001)
}
