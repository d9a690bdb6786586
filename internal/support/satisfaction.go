package support

import (
	"context"

	"github.com/spacesedan/sentidesk/internal/sentiment"
)

// Satisfaction is the mean polarity of every message in history, or 0 when
// history is empty.
func Satisfaction(ctx context.Context, scorer *sentiment.Scorer, history []string) float64 {
	return Mean(Polarities(ctx, scorer, history))
}

func Polarities(ctx context.Context, scorer *sentiment.Scorer, history []string) []float64 {
	scores := make([]float64, len(history))
	for i, msg := range history {
		scores[i] = scorer.Score(ctx, msg)
	}
	return scores
}

func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
