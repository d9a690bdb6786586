package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCached_CallsInnerOncePerText(t *testing.T) {
	calls := map[string]int{}
	inner := AnalyzerFunc(func(_ context.Context, text string) (float64, error) {
		calls[text]++
		return float64(len(text)) / 100, nil
	})
	c := NewCached(inner, NewMemoryCache(0), "test")
	ctx := context.Background()

	first, err := c.Polarity(ctx, "hello there")
	require.NoError(t, err)
	second, err := c.Polarity(ctx, "hello there")
	require.NoError(t, err)
	_, err = c.Polarity(ctx, "other")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls["hello there"])
	assert.Equal(t, 1, calls["other"])
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	attempts := 0
	inner := AnalyzerFunc(func(context.Context, string) (float64, error) {
		attempts++
		if attempts == 1 {
			return 0, errors.New("flaky")
		}
		return 0.5, nil
	})
	cache := NewMemoryCache(0)
	c := NewCached(inner, cache, "test")
	ctx := context.Background()

	_, err := c.Polarity(ctx, "text")
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	p, err := c.Polarity(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)
}

func TestMemoryCache_ResetsWhenFull(t *testing.T) {
	m := NewMemoryCache(2)
	ctx := context.Background()
	m.Set(ctx, "a", 0.1)
	m.Set(ctx, "b", 0.2)
	m.Set(ctx, "c", 0.3)

	assert.Equal(t, 1, m.Len())
	p, ok := m.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 0.3, p)
}

func TestCached_SharedCacheKeepsAnalyzersApart(t *testing.T) {
	shared := NewMemoryCache(0)
	positive := NewCached(AnalyzerFunc(func(context.Context, string) (float64, error) {
		return 0.9, nil
	}), shared, "vader")
	negative := NewCached(AnalyzerFunc(func(context.Context, string) (float64, error) {
		return -0.9, nil
	}), shared, "openai:gpt-4o-mini")
	ctx := context.Background()

	p, err := positive.Polarity(ctx, "my order arrived")
	require.NoError(t, err)
	assert.Equal(t, 0.9, p)

	n, err := negative.Polarity(ctx, "my order arrived")
	require.NoError(t, err)
	assert.Equal(t, -0.9, n)

	p, err = positive.Polarity(ctx, "my order arrived")
	require.NoError(t, err)
	assert.Equal(t, 0.9, p)
	assert.Equal(t, 2, shared.Len())
}

func TestCacheKey(t *testing.T) {
	assert.True(t, strings.HasPrefix(CacheKey("vader", "anything"), "vader:"))
	assert.Len(t, CacheKey("", "anything"), 65)
	assert.Equal(t, CacheKey("ns", "same"), CacheKey("ns", "same"))
	assert.NotEqual(t, CacheKey("ns", "a"), CacheKey("ns", "b"))
	assert.NotEqual(t, CacheKey("vader", "a"), CacheKey("openai:gpt-4o", "a"))
}
