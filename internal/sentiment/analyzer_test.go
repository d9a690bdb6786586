package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/stretchr/testify/assert"
)

func fixed(p float64) Analyzer {
	return AnalyzerFunc(func(context.Context, string) (float64, error) { return p, nil })
}

func TestThresholds_Classify(t *testing.T) {
	tests := []struct {
		polarity float64
		want     models.Sentiment
	}{
		{0.9, models.SentimentPositive},
		{0.2000001, models.SentimentPositive},
		{0.2, models.SentimentNeutral},
		{0, models.SentimentNeutral},
		{-0.2, models.SentimentNeutral},
		{-0.2000001, models.SentimentNegative},
		{-1, models.SentimentNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultThresholds.Classify(tt.polarity), "polarity %v", tt.polarity)
	}
}

func TestThresholds_Custom(t *testing.T) {
	th := Thresholds{Positive: 0.5, Negative: -0.5}
	assert.Equal(t, models.SentimentNeutral, th.Classify(0.4))
	assert.Equal(t, models.SentimentPositive, th.Classify(0.6))
	assert.Equal(t, models.SentimentNegative, th.Classify(-0.6))
}

func TestScorer(t *testing.T) {
	ctx := context.Background()

	s := NewScorer(fixed(0.7), DefaultThresholds)
	p := s.Score(ctx, "anything")
	assert.Equal(t, 0.7, p)
	assert.Equal(t, models.SentimentPositive, s.Classify(p))

	s = NewScorer(fixed(-3), DefaultThresholds)
	assert.Equal(t, -1.0, s.Score(ctx, "clamped"))

	failing := AnalyzerFunc(func(context.Context, string) (float64, error) {
		return 0.9, errors.New("model offline")
	})
	s = NewScorer(failing, DefaultThresholds)
	p = s.Score(ctx, "anything")
	assert.Equal(t, 0.0, p)
	assert.Equal(t, models.SentimentNeutral, s.Classify(p))
}
