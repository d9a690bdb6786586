package support

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spacesedan/sentidesk/internal/models"
)

const (
	OpenerApologetic = "I'm really sorry you're having trouble. I've flagged this for our support team to help you as soon as possible."
	OpenerReassuring = "I understand how you feel. Let's work together to solve this."
	OpenerCheerful   = "Great to hear from you! Here's some info that might help:"
	OpenerNeutral    = "Here's some information that might help you:"

	NoArticlesLine = "Sorry, I couldn't find any relevant articles."
)

// Reply carries what the composer needs to render a response.
type Reply struct {
	UserName   string
	Sentiment  models.Sentiment
	Emotion    models.Emotion
	Escalation bool
	Tone       models.Tone
	Articles   []models.Article
	Feedback   string
}

func Compose(r Reply) string {
	lines := []string{address(r.UserName, opener(r.Escalation, r.Tone))}

	if len(r.Articles) == 0 {
		lines = append(lines, NoArticlesLine)
	}
	for _, a := range r.Articles {
		lines = append(lines, fmt.Sprintf("- %s: %s", a.Title, a.Content))
	}

	if fb := strings.TrimSpace(r.Feedback); fb != "" {
		lines = append(lines, "Feedback received: "+fb)
	}

	return strings.Join(lines, "\n")
}

func opener(escalation bool, tone models.Tone) string {
	if escalation {
		return OpenerApologetic
	}
	switch tone {
	case models.ToneApologetic:
		return OpenerApologetic
	case models.ToneReassuring:
		return OpenerReassuring
	case models.ToneCheerful:
		return OpenerCheerful
	default:
		return OpenerNeutral
	}
}

// address prefixes the opener with the customer's name. The opener's first
// letter is lower-cased unless it is the pronoun "I".
func address(name, text string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return text
	}

	first, size := utf8.DecodeRuneInString(text)
	pronoun := first == 'I' && (len(text) == size || text[size] == ' ' || text[size] == '\'')
	if !pronoun {
		text = string(unicode.ToLower(first)) + text[size:]
	}
	return name + ", " + text
}
