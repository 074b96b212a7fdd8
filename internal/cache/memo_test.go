package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func constant(v string) func() (string, error) {
	return func() (string, error) { return v, nil }
}

func TestGetOrCompute_StoresValue(t *testing.T) {
	m := New[string, string](10)

	v, err := m.GetOrCompute("a", constant("first"))
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	v, err = m.GetOrCompute("a", constant("second"))
	require.NoError(t, err)
	assert.Equal(t, "first", v, "cached value should win over a new compute")

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestGetOrCompute_FIFOEviction(t *testing.T) {
	m := New[string, string](2)

	for _, k := range []string{"a", "b"} {
		_, err := m.GetOrCompute(k, constant(k))
		require.NoError(t, err)
	}

	// Reading "a" must not protect it: eviction follows insertion order.
	_, ok := m.Get("a")
	require.True(t, ok)
	_, err := m.GetOrCompute("a", constant("ignored"))
	require.NoError(t, err)

	_, err = m.GetOrCompute("c", constant("c"))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c"}, m.Keys())
	_, ok = m.Get("a")
	assert.False(t, ok, "oldest key should have been evicted")
	assert.Equal(t, uint64(1), m.Stats().Evictions)
}

func TestGetOrCompute_Unbounded(t *testing.T) {
	m := New[int, int](0)
	for i := 0; i < 500; i++ {
		_, err := m.GetOrCompute(i, func() (int, error) { return i * 2, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 500, m.Len())
	assert.Zero(t, m.Stats().Evictions)

	v, ok := m.Get(250)
	require.True(t, ok)
	assert.Equal(t, 500, v)
}

func TestGetOrCompute_ErrorsNotCached(t *testing.T) {
	m := New[string, string](4)
	boom := errors.New("boom")

	_, err := m.GetOrCompute("k", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, m.Len())

	v, err := m.GetOrCompute("k", constant("ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGetOrCompute_ConcurrentSameKeyComputesOnce(t *testing.T) {
	m := New[string, *int](8)

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (*int, error) {
		calls.Add(1)
		<-release
		v := 42
		return &v, nil
	}

	const workers = 32
	results := make([]*int, workers)
	var started, done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			v, err := m.GetOrCompute("same", compute)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	started.Wait()
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i], "worker %d saw a different value", i)
	}

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(workers-1), stats.Hits, "callers sharing the flight count as hits")
}

func TestGetOrCompute_ConcurrentDistinctKeys(t *testing.T) {
	m := New[int, int](0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := m.GetOrCompute(j, func() (int, error) { return j, nil })
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, m.Len())
	assert.Equal(t, uint64(20), m.Stats().Misses)
}
