package support

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatisfaction(t *testing.T) {
	ctx := context.Background()
	scorer := scripted(map[string]float64{"good": 0.6, "bad": -0.4, "meh": 0.1})

	assert.Equal(t, 0.0, Satisfaction(ctx, scorer, nil))
	assert.Equal(t, 0.0, Satisfaction(ctx, scorer, []string{}))
	assert.Equal(t, 0.6, Satisfaction(ctx, scorer, []string{"good"}))
	assert.InDelta(t, 0.1, Satisfaction(ctx, scorer, []string{"good", "bad", "meh"}), 1e-9)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.25, Mean([]float64{0.5, 0}))
}
