package support

import "github.com/spacesedan/sentidesk/internal/models"

func CalibrateTone(s models.Sentiment, e models.Emotion, escalation bool) models.Tone {
	switch {
	case escalation:
		return models.ToneApologetic
	case e == models.EmotionHappy || s == models.SentimentPositive:
		return models.ToneCheerful
	case e == models.EmotionAngry || e == models.EmotionFrustrated || e == models.EmotionSad ||
		s == models.SentimentNegative:
		return models.ToneReassuring
	default:
		return models.ToneNeutral
	}
}
