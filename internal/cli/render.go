package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spacesedan/sentidesk/internal/models"
)

var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatTurn renders one assistant reply. Plain output is stable and meant for
// pipes; styled output adds color by tone.
func FormatTurn(r models.TurnResult, styled bool) string {
	if !styled {
		return fmt.Sprintf("Support (sentiment=%s, emotion=%s, escalation=%t, tone=%s, satisfaction=%.2f): %s",
			r.Sentiment, r.Emotion, r.Escalation, r.Tone, r.Satisfaction, r.Response)
	}

	meta := StyleDim.Render(fmt.Sprintf("sentiment=%s emotion=%s tone=%s satisfaction=%.2f",
		r.Sentiment, r.Emotion, r.Tone, r.Satisfaction))
	header := StyleHeader.Render("Support")
	if r.Escalation {
		header += " " + StyleRed.Render("● ESCALATED")
	}
	return fmt.Sprintf("%s %s\n%s", header, meta, toneStyle(r.Tone).Render(r.Response))
}

func toneStyle(t models.Tone) lipgloss.Style {
	switch t {
	case models.ToneApologetic:
		return StyleRed
	case models.ToneReassuring:
		return StyleYellow
	case models.ToneCheerful:
		return StyleGreen
	default:
		return lipgloss.NewStyle()
	}
}

func FormatArticles(articles []models.Article, styled bool) string {
	var out string
	for _, a := range articles {
		title := a.Title
		if styled {
			title = StyleHeader.Render(title)
		}
		out += fmt.Sprintf("[%d] %s: %s\n", a.ID, title, a.Content)
	}
	return out
}
