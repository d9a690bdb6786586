package models

import "time"

// EscalationEvent is published whenever a turn is flagged for a human agent.
type EscalationEvent struct {
	SessionID    string    `json:"session_id"`
	UserName     string    `json:"user_name"`
	Category     string    `json:"category"`
	Urgency      string    `json:"urgency"`
	Message      string    `json:"message"`
	Sentiment    Sentiment `json:"sentiment"`
	Emotion      Emotion   `json:"emotion"`
	Satisfaction float64   `json:"satisfaction"`
	Tone         Tone      `json:"tone"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// TurnRecord is the audit row stored for every processed turn.
type TurnRecord struct {
	SessionID    string    `json:"session_id" dynamodbav:"session_id"`
	TurnID       string    `json:"turn_id" dynamodbav:"turn_id"`
	Message      string    `json:"message" dynamodbav:"message"`
	Sentiment    Sentiment `json:"sentiment" dynamodbav:"sentiment"`
	Emotion      Emotion   `json:"emotion" dynamodbav:"emotion"`
	Polarity     float64   `json:"polarity" dynamodbav:"polarity"`
	Satisfaction float64   `json:"satisfaction" dynamodbav:"satisfaction"`
	Escalation   bool      `json:"escalation" dynamodbav:"escalation"`
	Tone         Tone      `json:"tone" dynamodbav:"tone"`
	ArticleIDs   []int     `json:"article_ids" dynamodbav:"article_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"-"`
}
