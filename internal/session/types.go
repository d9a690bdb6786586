package session

import "time"

// Session is the server-held state of one conversation.
type Session struct {
	ID        string    `json:"id"`
	History   []string  `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"` // bumped on every successful Update
}

func (s *Session) clone() *Session {
	c := *s
	c.History = append([]string(nil), s.History...)
	return &c
}

// AppendMessage adds msg to history and, when max > 0, keeps only the newest
// max messages.
func AppendMessage(history []string, msg string, max int) []string {
	history = append(history, msg)
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}
