package support

import (
	"strings"

	"github.com/spacesedan/sentidesk/internal/models"
)

// EscalationPolicy holds the tunable limits of the escalation rules.
type EscalationPolicy struct {
	SatisfactionFloor float64
	NegativeTurnLimit int
}

var DefaultEscalationPolicy = EscalationPolicy{
	SatisfactionFloor: -0.3,
	NegativeTurnLimit: 2,
}

// Signals are the per-turn inputs to the escalation decision. NegativeTurns
// counts history messages whose own polarity classifies as negative.
type Signals struct {
	Sentiment     models.Sentiment
	Emotion       models.Emotion
	Urgency       string
	Satisfaction  float64
	NegativeTurns int
}

// Escalate applies the rules in order and stops at the first that fires.
func (p EscalationPolicy) Escalate(s Signals) bool {
	if s.Sentiment == models.SentimentNegative ||
		s.Emotion == models.EmotionAngry ||
		s.Emotion == models.EmotionFrustrated ||
		isHighUrgency(s.Urgency) {
		return true
	}

	if s.Satisfaction < p.SatisfactionFloor {
		return true
	}

	return p.NegativeTurnLimit > 0 && s.NegativeTurns >= p.NegativeTurnLimit
}

func isHighUrgency(urgency string) bool {
	return strings.EqualFold(strings.TrimSpace(urgency), models.UrgencyHigh)
}

func CountNegative(labels []models.Sentiment) int {
	n := 0
	for _, l := range labels {
		if l == models.SentimentNegative {
			n++
		}
	}
	return n
}
