package support

import (
	"context"
	"log/slog"

	"github.com/spacesedan/sentidesk/internal/emotion"
	"github.com/spacesedan/sentidesk/internal/knowledge"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/retrieval"
	"github.com/spacesedan/sentidesk/internal/sentiment"
)

// Turn is one customer message together with the prior messages of the
// conversation. History is never modified.
type Turn struct {
	Message  string
	History  []string
	UserName string
	Category string
	Urgency  string
	Feedback string
}

// Assistant runs the decision pipeline. It holds no per-conversation state,
// so one Assistant serves every session concurrently.
type Assistant struct {
	scorer    *sentiment.Scorer
	detector  *emotion.Detector
	retriever retrieval.Retriever
	kb        *knowledge.Store
	policy    EscalationPolicy
}

func NewAssistant(
	scorer *sentiment.Scorer,
	detector *emotion.Detector,
	retriever retrieval.Retriever,
	kb *knowledge.Store,
	policy EscalationPolicy,
) *Assistant {
	return &Assistant{
		scorer:    scorer,
		detector:  detector,
		retriever: retriever,
		kb:        kb,
		policy:    policy,
	}
}

func (a *Assistant) Articles() []models.Article {
	return a.kb.Articles()
}

func (a *Assistant) Article(id int) (models.Article, bool) {
	return a.kb.Get(id)
}

func (a *Assistant) Respond(ctx context.Context, turn Turn) models.TurnResult {
	history := make([]string, 0, len(turn.History)+1)
	history = append(history, turn.History...)
	history = append(history, turn.Message)

	polarities := Polarities(ctx, a.scorer, history)
	labels := make([]models.Sentiment, len(polarities))
	for i, p := range polarities {
		labels[i] = a.scorer.Classify(p)
	}

	polarity := polarities[len(polarities)-1]
	label := labels[len(labels)-1]
	feeling := a.detector.Detect(turn.Message)
	satisfaction := Mean(polarities)
	articles := a.retriever.Retrieve(turn.Message, turn.Category, a.kb.Articles())

	escalation := a.policy.Escalate(Signals{
		Sentiment:     label,
		Emotion:       feeling,
		Urgency:       turn.Urgency,
		Satisfaction:  satisfaction,
		NegativeTurns: CountNegative(labels),
	})
	tone := CalibrateTone(label, feeling, escalation)

	response := Compose(Reply{
		UserName:   turn.UserName,
		Sentiment:  label,
		Emotion:    feeling,
		Escalation: escalation,
		Tone:       tone,
		Articles:   articles,
		Feedback:   turn.Feedback,
	})

	slog.Info("[Assistant] Turn processed",
		slog.String("sentiment", string(label)),
		slog.String("emotion", string(feeling)),
		slog.Float64("polarity", polarity),
		slog.Float64("satisfaction", satisfaction),
		slog.Bool("escalation", escalation),
		slog.String("tone", string(tone)),
		slog.Int("articles", len(articles)))

	if articles == nil {
		articles = []models.Article{}
	}

	return models.TurnResult{
		Sentiment:    label,
		Emotion:      feeling,
		Polarity:     polarity,
		Satisfaction: satisfaction,
		Escalation:   escalation,
		Tone:         tone,
		Articles:     articles,
		Response:     response,
	}
}
