package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_PassesThrough(t *testing.T) {
	f := Fallback{Name: "test", Analyzer: fixed(-0.4), Timeout: time.Second}
	p, err := f.Polarity(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, -0.4, p)
}

func TestFallback_NeutralOnError(t *testing.T) {
	failing := AnalyzerFunc(func(context.Context, string) (float64, error) {
		return -0.9, errors.New("503 from analyzer")
	})
	f := Fallback{Name: "test", Analyzer: failing, Timeout: time.Second}

	p, err := f.Polarity(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestFallback_NeutralOnTimeout(t *testing.T) {
	slow := AnalyzerFunc(func(ctx context.Context, _ string) (float64, error) {
		select {
		case <-time.After(2 * time.Second):
			return -0.9, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	f := Fallback{Name: "slow", Analyzer: slow, Timeout: 20 * time.Millisecond}

	start := time.Now()
	p, err := f.Polarity(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
	assert.Less(t, time.Since(start), time.Second)
}
