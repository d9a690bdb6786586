package sentiment

import (
	"context"
	"log/slog"

	"github.com/spacesedan/sentidesk/internal/models"
)

// Analyzer turns text into a polarity score in [-1, 1].
type Analyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// AnalyzerFunc adapts a plain function to Analyzer.
type AnalyzerFunc func(ctx context.Context, text string) (float64, error)

func (f AnalyzerFunc) Polarity(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// Thresholds bound the neutral band. Both bounds are exclusive: a polarity
// equal to Positive or Negative is neutral.
type Thresholds struct {
	Positive float64
	Negative float64
}

var DefaultThresholds = Thresholds{Positive: 0.2, Negative: -0.2}

func (t Thresholds) Classify(polarity float64) models.Sentiment {
	switch {
	case polarity > t.Positive:
		return models.SentimentPositive
	case polarity < t.Negative:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

type Scorer struct {
	analyzer   Analyzer
	thresholds Thresholds
}

func NewScorer(analyzer Analyzer, thresholds Thresholds) *Scorer {
	return &Scorer{analyzer: analyzer, thresholds: thresholds}
}

// Score never fails: an analyzer error is logged and treated as neutral.
func (s *Scorer) Score(ctx context.Context, text string) float64 {
	polarity, err := s.analyzer.Polarity(ctx, text)
	if err != nil {
		slog.Warn("[Scorer] Analyzer failed, treating text as neutral",
			slog.String("error", err.Error()))
		return 0
	}
	return Clamp(polarity)
}

func (s *Scorer) Classify(polarity float64) models.Sentiment {
	return s.thresholds.Classify(polarity)
}

func Clamp(polarity float64) float64 {
	if polarity > 1 {
		return 1
	}
	if polarity < -1 {
		return -1
	}
	return polarity
}
