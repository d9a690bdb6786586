package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Fallback bounds an analyzer call with Timeout and answers 0 (neutral) when
// the analyzer errors or does not answer in time.
type Fallback struct {
	Name     string
	Analyzer Analyzer
	Timeout  time.Duration
}

type polarityResult struct {
	polarity float64
	err      error
}

func (f Fallback) Polarity(ctx context.Context, text string) (float64, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	done := make(chan polarityResult, 1)
	go func() {
		p, err := f.Analyzer.Polarity(ctx, text)
		done <- polarityResult{polarity: p, err: err}
	}()

	var err error
	select {
	case res := <-done:
		if res.err == nil {
			return Clamp(res.polarity), nil
		}
		err = res.err
	case <-ctx.Done():
		err = fmt.Errorf("analyzer did not answer: %w", ctx.Err())
	}

	slog.Warn("[Fallback] Analyzer unavailable, using neutral polarity",
		slog.String("analyzer", f.Name),
		slog.String("error", err.Error()))
	return 0, nil
}
