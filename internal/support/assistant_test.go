package support

import (
	"context"
	"strings"
	"testing"

	"github.com/spacesedan/sentidesk/internal/emotion"
	"github.com/spacesedan/sentidesk/internal/knowledge"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/retrieval"
	"github.com/spacesedan/sentidesk/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleIDs(articles []models.Article) []int {
	ids := make([]int, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	return ids
}

func vaderAssistant(t *testing.T) *Assistant {
	t.Helper()
	scorer := sentiment.NewScorer(sentiment.NewVADER(), sentiment.DefaultThresholds)
	return NewAssistant(scorer, emotion.NewDetector(nil), retrieval.Exact{}, knowledge.Default(), DefaultEscalationPolicy)
}

func TestRespond_AngryCancellation(t *testing.T) {
	a := vaderAssistant(t)

	result := a.Respond(context.Background(), Turn{Message: "I am furious, my subscription won't cancel"})

	assert.Equal(t, models.EmotionAngry, result.Emotion)
	assert.True(t, result.Escalation)
	assert.Equal(t, models.ToneApologetic, result.Tone)
	assert.Contains(t, articleIDs(result.Articles), 3)
	assert.True(t, strings.HasPrefix(result.Response, OpenerApologetic), result.Response)
	assert.Contains(t, result.Response, "- Cancel Subscription: Contact support to cancel your subscription.")
}

func TestRespond_HappyCustomer(t *testing.T) {
	a := vaderAssistant(t)

	result := a.Respond(context.Background(), Turn{Message: "thanks, everything works great"})

	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.Equal(t, models.EmotionNeutral, result.Emotion)
	assert.False(t, result.Escalation)
	assert.Equal(t, models.ToneCheerful, result.Tone)
	assert.Empty(t, result.Articles)
	assert.NotNil(t, result.Articles)
	assert.Equal(t, OpenerCheerful+"\n"+NoArticlesLine, result.Response)
}

func TestRespond_PasswordQuestion(t *testing.T) {
	a := newTestAssistant(scripted(nil))

	result := a.Respond(context.Background(), Turn{Message: "password"})

	assert.Equal(t, []int{1}, articleIDs(result.Articles))
	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, models.ToneNeutral, result.Tone)
	assert.False(t, result.Escalation)
	assert.Equal(t, OpenerNeutral+"\n- Reset Password: To reset your password, click 'Forgot Password' on the login page.", result.Response)
}

func TestRespond_SatisfactionCoversHistory(t *testing.T) {
	scorer := scripted(map[string]float64{"first": 0.8, "second": -0.2, "third": 0.3})
	a := newTestAssistant(scorer)

	history := []string{"first", "second"}
	result := a.Respond(context.Background(), Turn{Message: "third", History: history})

	assert.InDelta(t, (0.8-0.2+0.3)/3, result.Satisfaction, 1e-9)
	assert.Equal(t, 0.3, result.Polarity)
	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.Equal(t, []string{"first", "second"}, history, "history must not be modified")
}

func TestRespond_SingleMessageSatisfactionIsPolarity(t *testing.T) {
	a := newTestAssistant(scripted(map[string]float64{"hello there": 0.15}))

	result := a.Respond(context.Background(), Turn{Message: "hello there"})

	assert.Equal(t, 0.15, result.Satisfaction)
	assert.Equal(t, result.Polarity, result.Satisfaction)
}

func TestRespond_EscalatesOnRepeatedNegativity(t *testing.T) {
	scorer := scripted(map[string]float64{
		"this is bad":   -0.5,
		"still bad":     -0.5,
		"ok what now":   0.0,
		"really good":   0.9,
		"amazing stuff": 0.9,
	})
	a := newTestAssistant(scorer)

	result := a.Respond(context.Background(), Turn{
		Message: "ok what now",
		History: []string{"this is bad", "still bad", "really good", "amazing stuff"},
	})

	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Greater(t, result.Satisfaction, DefaultEscalationPolicy.SatisfactionFloor)
	assert.True(t, result.Escalation)
	assert.Equal(t, models.ToneApologetic, result.Tone)
}

func TestRespond_EscalatesOnLowSatisfaction(t *testing.T) {
	a := newTestAssistant(scripted(map[string]float64{"awful": -0.9, "fine": 0.0}))

	result := a.Respond(context.Background(), Turn{Message: "fine", History: []string{"awful"}})

	assert.InDelta(t, -0.45, result.Satisfaction, 1e-9)
	assert.True(t, result.Escalation)
}

func TestRespond_HighUrgencyEscalates(t *testing.T) {
	a := newTestAssistant(scripted(nil))

	result := a.Respond(context.Background(), Turn{Message: "where is my invoice", Urgency: "High"})

	assert.True(t, result.Escalation)
	assert.Equal(t, models.ToneApologetic, result.Tone)
}

func TestRespond_AnalyzerFailureIsNeutral(t *testing.T) {
	failing := sentiment.AnalyzerFunc(func(context.Context, string) (float64, error) {
		return 0, assert.AnError
	})
	a := newTestAssistant(sentiment.NewScorer(failing, sentiment.DefaultThresholds))

	result := a.Respond(context.Background(), Turn{Message: "update my email"})

	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 0.0, result.Polarity)
	assert.Equal(t, []int{2}, articleIDs(result.Articles))
}

func TestRespond_NameAndFeedback(t *testing.T) {
	a := newTestAssistant(scripted(nil))

	result := a.Respond(context.Background(), Turn{
		Message:  "xyzzy-no-match",
		UserName: "Sam",
		Feedback: "quick reply",
	})

	require.Empty(t, result.Articles)
	assert.Equal(t, "Sam, here's some information that might help you:\n"+NoArticlesLine+"\nFeedback received: quick reply", result.Response)
}

func TestRespond_ResultIsWellFormed(t *testing.T) {
	scores := map[string]float64{"a": 1, "b": -1, "c": 0.5, "d": -0.25}
	a := newTestAssistant(scripted(scores))

	messages := []string{"a", "b", "c", "d", "I am sad", "I'm so happy", "I'm stuck"}
	for i, msg := range messages {
		result := a.Respond(context.Background(), Turn{Message: msg, History: messages[:i]})

		assert.True(t, result.Sentiment.Valid(), msg)
		assert.True(t, result.Emotion.Valid(), msg)
		assert.True(t, result.Tone.Valid(), msg)
		assert.GreaterOrEqual(t, result.Satisfaction, -1.0)
		assert.LessOrEqual(t, result.Satisfaction, 1.0)
		assert.NotEmpty(t, result.Response)
		if result.Escalation {
			assert.Equal(t, models.ToneApologetic, result.Tone)
		}
		if result.Emotion == models.EmotionAngry {
			assert.True(t, result.Escalation)
		}
	}
}
