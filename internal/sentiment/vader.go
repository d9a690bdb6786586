package sentiment

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// VADER scores text with the VADER lexicon. The compound score is already in
// [-1, 1].
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Polarity(_ context.Context, text string) (float64, error) {
	scores := v.analyzer.PolarityScores(ConvertMarkdownToText(text))
	return scores.Compound, nil
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	input = urlPattern.ReplaceAllString(input, "")
	return strings.Join(strings.Fields(input), " ")
}

// ConvertMarkdownToText renders markdown and strips the resulting HTML so
// formatting characters do not reach the lexicon.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input),
		blackfriday.WithNoExtensions(),
		// no smartypants, so contractions keep ASCII apostrophes for the lexicon
		blackfriday.WithRenderer(blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
			Flags: blackfriday.HTMLFlagsNone,
		})))
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(html.UnescapeString(plainText)), " ")
}
