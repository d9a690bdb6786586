package models

// ChatRequest is the body accepted by POST /rag and, without History, by
// POST /sessions/:id/messages.
type ChatRequest struct {
	Message  string   `json:"message"`
	History  []string `json:"history"`
	UserName string   `json:"user_name"`
	Category string   `json:"category"`
	Urgency  string   `json:"urgency"`
	Feedback *string  `json:"feedback,omitempty"`
}

// WithDefaults fills the optional fields the same way the web form does.
func (r ChatRequest) WithDefaults() ChatRequest {
	if r.History == nil {
		r.History = []string{}
	}
	if r.UserName == "" {
		r.UserName = DefaultUserName
	}
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	r.Category = CanonicalCategory(r.Category)
	if r.Urgency == "" {
		r.Urgency = DefaultUrgency
	}
	return r
}

type ChatResponse struct {
	SessionID    string    `json:"session_id,omitempty"`
	Response     string    `json:"response"`
	Sentiment    Sentiment `json:"sentiment"`
	Emotion      Emotion   `json:"emotion"`
	Escalation   bool      `json:"escalation"`
	Tone         Tone      `json:"tone"`
	Satisfaction float64   `json:"satisfaction"`
	Articles     []Article `json:"articles"`
}

func NewChatResponse(sessionID string, result TurnResult) ChatResponse {
	articles := result.Articles
	if articles == nil {
		articles = []Article{}
	}
	return ChatResponse{
		SessionID:    sessionID,
		Response:     result.Response,
		Sentiment:    result.Sentiment,
		Emotion:      result.Emotion,
		Escalation:   result.Escalation,
		Tone:         result.Tone,
		Satisfaction: result.Satisfaction,
		Articles:     articles,
	}
}

type SessionResponse struct {
	SessionID string   `json:"session_id"`
	History   []string `json:"history"`
}
