package support

import (
	"testing"

	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEscalate(t *testing.T) {
	p := DefaultEscalationPolicy

	tests := []struct {
		name    string
		signals Signals
		want    bool
	}{
		{"negative sentiment", Signals{Sentiment: models.SentimentNegative, Emotion: models.EmotionNeutral}, true},
		{"angry with positive mood", Signals{Sentiment: models.SentimentPositive, Emotion: models.EmotionAngry, Satisfaction: 0.9}, true},
		{"frustrated", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionFrustrated}, true},
		{"high urgency", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionNeutral, Urgency: " high "}, true},
		{"normal urgency", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionNeutral, Urgency: "Normal"}, false},
		{"low satisfaction", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionNeutral, Satisfaction: -0.31}, true},
		{"satisfaction at floor", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionNeutral, Satisfaction: -0.3}, false},
		{"two negative turns", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionNeutral, NegativeTurns: 2}, true},
		{"one negative turn", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionNeutral, NegativeTurns: 1}, false},
		{"sad is not enough", Signals{Sentiment: models.SentimentNeutral, Emotion: models.EmotionSad}, false},
		{"calm", Signals{Sentiment: models.SentimentPositive, Emotion: models.EmotionHappy, Satisfaction: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Escalate(tt.signals))
		})
	}
}

func TestEscalate_AngryAlwaysEscalates(t *testing.T) {
	p := DefaultEscalationPolicy
	for _, s := range []models.Sentiment{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		for _, sat := range []float64{-1, 0, 1} {
			assert.True(t, p.Escalate(Signals{Sentiment: s, Emotion: models.EmotionAngry, Satisfaction: sat}))
		}
	}
}

func TestCountNegative(t *testing.T) {
	labels := []models.Sentiment{models.SentimentNegative, models.SentimentNeutral, models.SentimentNegative}
	assert.Equal(t, 2, CountNegative(labels))
	assert.Equal(t, 0, CountNegative(nil))
}
