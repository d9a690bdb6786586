package clients

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelScore is one class probability from a text classification model.
type LabelScore struct {
	Label string
	Score float64
}

// LabelPolarity folds a classifier's label distribution into [-1, 1].
// Positive/negative/neutral heads score P(positive) - P(negative); star
// rating heads score the expected rating rescaled from [1, 5].
func LabelPolarity(scores []LabelScore) (float64, error) {
	var pos, neg, total float64
	var stars, starWeight float64

	for _, s := range scores {
		label := strings.ToLower(strings.TrimSpace(s.Label))
		if n, ok := starRating(label); ok {
			stars += float64(n) * s.Score
			starWeight += s.Score
			continue
		}

		switch label {
		case "positive", "pos", "label_2":
			pos += s.Score
		case "negative", "neg", "label_0":
			neg += s.Score
		case "neutral", "neu", "label_1":
		default:
			continue
		}
		total += s.Score
	}

	switch {
	case starWeight > 0:
		return max(-1, min(1, (stars/starWeight-3)/2)), nil
	case total > 0:
		return max(-1, min(1, (pos-neg)/total)), nil
	default:
		return 0, fmt.Errorf("no sentiment labels in classifier output %v", scores)
	}
}

func starRating(label string) (int, bool) {
	digits, ok := strings.CutSuffix(label, " stars")
	if !ok {
		digits, ok = strings.CutSuffix(label, " star")
	}
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}
