package retrieval

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spacesedan/sentidesk/internal/models"
)

const (
	ModeExact = "exact"
	ModeFuzzy = "fuzzy"

	DefaultFuzzyThreshold = 70

	minKeywordLength = 3
)

// Retriever selects the articles relevant to a customer message. Results keep
// the order of the input slice and never contain duplicates.
type Retriever interface {
	Retrieve(query, category string, articles []models.Article) []models.Article
}

func New(mode string, fuzzyThreshold int) (Retriever, error) {
	switch strings.ToLower(mode) {
	case "", ModeExact:
		return Exact{}, nil
	case ModeFuzzy:
		return Fuzzy{Threshold: fuzzyThreshold}, nil
	default:
		return nil, fmt.Errorf("unknown retrieval mode %q", mode)
	}
}

// Exact matches the whole query as a case-insensitive substring of an
// article's title or content. When the phrase itself does not appear, each
// keyword of the query is tried on its own. An empty query matches nothing.
// Category is ignored.
type Exact struct{}

func (Exact) Retrieve(query, _ string, articles []models.Article) []models.Article {
	phrase := strings.ToLower(strings.TrimSpace(query))
	if phrase == "" {
		return nil
	}
	keywords := Keywords(phrase)

	var results []models.Article
	for _, a := range articles {
		haystacks := [2]string{strings.ToLower(a.Title), strings.ToLower(a.Content)}
		if containsAny(haystacks, phrase) || containsAny(haystacks, keywords...) {
			results = append(results, a)
		}
	}
	return results
}

// Fuzzy includes an article when the partial ratio between the query and its
// title or content is above Threshold, or when the category appears in the
// title.
type Fuzzy struct {
	Threshold int
}

func (f Fuzzy) Retrieve(query, category string, articles []models.Article) []models.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(category))

	var results []models.Article
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		content := strings.ToLower(a.Content)

		switch {
		case PartialRatio(q, title) > f.Threshold,
			PartialRatio(q, content) > f.Threshold,
			c != "" && strings.Contains(title, c):
			results = append(results, a)
		}
	}
	return results
}

// Keywords splits lower-cased text into the words worth matching on their own.
func Keywords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < minKeywordLength {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		keywords = append(keywords, f)
	}
	return keywords
}

func containsAny(haystacks [2]string, needles ...string) bool {
	for _, n := range needles {
		for _, h := range haystacks {
			if strings.Contains(h, n) {
				return true
			}
		}
	}
	return false
}

var stopwords = map[string]struct{}{
	"about": {}, "all": {}, "also": {}, "and": {}, "any": {}, "are": {}, "been": {}, "but": {},
	"can": {}, "cannot": {}, "could": {}, "did": {}, "does": {}, "doesn": {}, "don": {}, "for": {},
	"from": {}, "get": {}, "got": {}, "had": {}, "has": {}, "have": {}, "help": {}, "her": {},
	"here": {}, "him": {}, "his": {}, "how": {}, "isn": {}, "its": {}, "just": {}, "need": {},
	"not": {}, "our": {}, "out": {}, "please": {}, "she": {}, "should": {}, "some": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "then": {}, "there": {}, "they": {}, "this": {},
	"too": {}, "very": {}, "want": {}, "was": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "why": {}, "will": {}, "with": {}, "won": {}, "would": {},
	"you": {}, "your": {},
}
