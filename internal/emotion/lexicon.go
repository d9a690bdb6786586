package emotion

import (
	"strings"

	"github.com/spacesedan/sentidesk/internal/models"
)

// Entry pairs an emotion with the keywords that reveal it.
type Entry struct {
	Label    models.Emotion
	Keywords []string
}

// DefaultLexicon is checked top to bottom; the first label with a matching
// keyword wins, so the order is part of the policy.
var DefaultLexicon = []Entry{
	{Label: models.EmotionAngry, Keywords: []string{"angry", "mad", "furious", "annoyed", "irritated"}},
	{Label: models.EmotionSad, Keywords: []string{"sad", "upset", "unhappy", "depressed", "disappointed"}},
	{Label: models.EmotionHappy, Keywords: []string{"happy", "glad", "pleased", "satisfied", "joyful"}},
	{Label: models.EmotionFrustrated, Keywords: []string{"frustrated", "stuck", "confused", "lost", "overwhelmed"}},
	{Label: models.EmotionNeutral},
}

type Detector struct {
	lexicon []Entry
}

func NewDetector(lexicon []Entry) *Detector {
	if lexicon == nil {
		lexicon = DefaultLexicon
	}
	return &Detector{lexicon: lexicon}
}

// Detect does a substring test, so "mad" also fires inside "made".
func (d *Detector) Detect(text string) models.Emotion {
	lower := strings.ToLower(text)
	for _, entry := range d.lexicon {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return entry.Label
			}
		}
	}
	return models.EmotionNeutral
}
