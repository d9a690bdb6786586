package models

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

type Emotion string

const (
	EmotionAngry      Emotion = "angry"
	EmotionSad        Emotion = "sad"
	EmotionHappy      Emotion = "happy"
	EmotionFrustrated Emotion = "frustrated"
	EmotionNeutral    Emotion = "neutral"
)

func (e Emotion) Valid() bool {
	switch e {
	case EmotionAngry, EmotionSad, EmotionHappy, EmotionFrustrated, EmotionNeutral:
		return true
	}
	return false
}

type Tone string

const (
	ToneApologetic Tone = "apologetic"
	ToneCheerful   Tone = "cheerful"
	ToneReassuring Tone = "reassuring"
	ToneNeutral    Tone = "neutral"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneApologetic, ToneCheerful, ToneReassuring, ToneNeutral:
		return true
	}
	return false
}

// TurnResult is everything the assistant decided for one customer message.
type TurnResult struct {
	Sentiment    Sentiment `json:"sentiment"`
	Emotion      Emotion   `json:"emotion"`
	Polarity     float64   `json:"polarity"`
	Satisfaction float64   `json:"satisfaction"`
	Escalation   bool      `json:"escalation"`
	Tone         Tone      `json:"tone"`
	Articles     []Article `json:"articles"`
	Response     string    `json:"response"`
}
