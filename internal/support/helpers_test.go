package support

import (
	"context"

	"github.com/spacesedan/sentidesk/internal/emotion"
	"github.com/spacesedan/sentidesk/internal/knowledge"
	"github.com/spacesedan/sentidesk/internal/retrieval"
	"github.com/spacesedan/sentidesk/internal/sentiment"
)

// scripted returns a fixed polarity per message and 0 for anything else.
func scripted(scores map[string]float64) *sentiment.Scorer {
	analyzer := sentiment.AnalyzerFunc(func(_ context.Context, text string) (float64, error) {
		return scores[text], nil
	})
	return sentiment.NewScorer(analyzer, sentiment.DefaultThresholds)
}

func newTestAssistant(scorer *sentiment.Scorer) *Assistant {
	return NewAssistant(scorer, emotion.NewDetector(nil), retrieval.Exact{}, knowledge.Default(), DefaultEscalationPolicy)
}
