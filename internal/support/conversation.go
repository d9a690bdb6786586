package support

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/session"
)

const maxSaveAttempts = 3

// Recorder stores an audit row for every processed turn.
type Recorder interface {
	Record(ctx context.Context, record models.TurnRecord) error
}

// Publisher announces escalations to whoever staffs the human queue.
type Publisher interface {
	PublishEscalation(ctx context.Context, event models.EscalationEvent) error
}

// Conversation runs the assistant against server-held session history.
type Conversation struct {
	assistant  *Assistant
	sessions   session.Store
	recorder   Recorder
	publisher  Publisher
	maxHistory int
}

type ConversationOption func(*Conversation)

func WithRecorder(r Recorder) ConversationOption {
	return func(c *Conversation) { c.recorder = r }
}

func WithPublisher(p Publisher) ConversationOption {
	return func(c *Conversation) { c.publisher = p }
}

// WithMaxHistory caps the stored history at the newest n messages.
func WithMaxHistory(n int) ConversationOption {
	return func(c *Conversation) { c.maxHistory = n }
}

func NewConversation(assistant *Assistant, sessions session.Store, opts ...ConversationOption) *Conversation {
	c := &Conversation{assistant: assistant, sessions: sessions}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Conversation) Start(ctx context.Context) (string, error) {
	s := &session.Session{ID: uuid.NewString(), History: []string{}}
	if err := c.sessions.Create(ctx, s); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	slog.Info("[Conversation] Session started", slog.String("session_id", s.ID))
	return s.ID, nil
}

// History returns session.ErrNotFound for unknown sessions.
func (c *Conversation) History(ctx context.Context, id string) ([]string, error) {
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s == nil {
		return nil, session.ErrNotFound
	}
	if s.History == nil {
		return []string{}, nil
	}
	return s.History, nil
}

func (c *Conversation) End(ctx context.Context, id string) error {
	if err := c.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Send answers one message in session id, creating the session on first use.
// turn.History is ignored; the stored history is used instead.
func (c *Conversation) Send(ctx context.Context, id string, turn Turn) (models.TurnResult, error) {
	var result models.TurnResult

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		s, err := c.load(ctx, id)
		if err != nil {
			return models.TurnResult{}, err
		}

		turn.History = s.History
		result = c.assistant.Respond(ctx, turn)
		s.History = session.AppendMessage(s.History, turn.Message, c.maxHistory)

		err = c.sessions.Update(ctx, s)
		if err == nil {
			c.afterTurn(ctx, id, turn, result)
			return result, nil
		}
		if !errors.Is(err, session.ErrVersionConflict) {
			return models.TurnResult{}, fmt.Errorf("failed to save session: %w", err)
		}

		slog.Warn("[Conversation] Session changed while responding, retrying",
			slog.String("session_id", id),
			slog.Int("attempt", attempt))
	}

	return models.TurnResult{}, fmt.Errorf("failed to save session after %d attempts: %w",
		maxSaveAttempts, session.ErrVersionConflict)
}

func (c *Conversation) load(ctx context.Context, id string) (*session.Session, error) {
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s != nil {
		return s, nil
	}

	s = &session.Session{ID: id, History: []string{}}
	err = c.sessions.Create(ctx, s)
	if errors.Is(err, session.ErrAlreadyExists) {
		// created concurrently; read the winner
		return c.load(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

func (c *Conversation) afterTurn(ctx context.Context, id string, turn Turn, result models.TurnResult) {
	now := time.Now()

	if c.recorder != nil {
		record := NewTurnRecord(id, turn.Message, result, now)
		if err := c.recorder.Record(ctx, record); err != nil {
			slog.Error("[Conversation] Failed to record turn",
				slog.String("session_id", id),
				slog.String("error", err.Error()))
		}
	}

	if c.publisher != nil && result.Escalation {
		event := models.EscalationEvent{
			SessionID:    id,
			UserName:     turn.UserName,
			Category:     turn.Category,
			Urgency:      turn.Urgency,
			Message:      turn.Message,
			Sentiment:    result.Sentiment,
			Emotion:      result.Emotion,
			Satisfaction: result.Satisfaction,
			Tone:         result.Tone,
			OccurredAt:   now,
		}
		if err := c.publisher.PublishEscalation(ctx, event); err != nil {
			slog.Error("[Conversation] Failed to publish escalation",
				slog.String("session_id", id),
				slog.String("error", err.Error()))
		}
	}
}

func NewTurnRecord(sessionID, message string, result models.TurnResult, at time.Time) models.TurnRecord {
	articleIDs := make([]int, 0, len(result.Articles))
	for _, a := range result.Articles {
		articleIDs = append(articleIDs, a.ID)
	}

	return models.TurnRecord{
		SessionID:    sessionID,
		TurnID:       uuid.NewString(),
		Message:      message,
		Sentiment:    result.Sentiment,
		Emotion:      result.Emotion,
		Polarity:     result.Polarity,
		Satisfaction: result.Satisfaction,
		Escalation:   result.Escalation,
		Tone:         result.Tone,
		ArticleIDs:   articleIDs,
		CreatedAt:    at,
	}
}
