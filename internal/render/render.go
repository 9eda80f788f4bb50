// Package render draws text for the terminal with a bold lead on every word
// and the active word highlighted.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"readalong/internal/bionic"
	"readalong/internal/timing"
	"readalong/internal/tokenize"
)

const (
	defaultActiveColor      = "#000000"
	defaultActiveBackground = "#FFD75F"
)

// Options are the reader's display preferences. They are passed in by the
// host rather than read from shared state.
type Options struct {
	LeadColor        string
	ActiveColor      string
	ActiveBackground string
	LetterSpacing    int
	LineSpacing      int
	Width            int
	Bionic           bionic.Policy

	// Renderer overrides the lipgloss renderer, mainly to force a color profile.
	Renderer *lipgloss.Renderer
}

type Renderer struct {
	opts        Options
	re          *lipgloss.Renderer
	lead        lipgloss.Style
	rest        lipgloss.Style
	activeLead  lipgloss.Style
	activeRest  lipgloss.Style
	tokens      []tokenize.Token
	wordIndexes []int
	words       int
}

func New(text string, opts Options) *Renderer {
	if opts.Bionic == (bionic.Policy{}) {
		opts.Bionic = bionic.DefaultPolicy()
	}
	if opts.ActiveColor == "" {
		opts.ActiveColor = defaultActiveColor
	}
	if opts.ActiveBackground == "" {
		opts.ActiveBackground = defaultActiveBackground
	}
	re := opts.Renderer
	if re == nil {
		re = lipgloss.DefaultRenderer()
	}

	lead := re.NewStyle().Bold(true)
	if opts.LeadColor != "" {
		lead = lead.Foreground(lipgloss.Color(opts.LeadColor))
	}
	rest := re.NewStyle()
	active := re.NewStyle().
		Foreground(lipgloss.Color(opts.ActiveColor)).
		Background(lipgloss.Color(opts.ActiveBackground))

	r := &Renderer{
		opts:       opts,
		re:         re,
		lead:       lead,
		rest:       rest,
		activeLead: active.Bold(true),
		activeRest: active,
	}
	r.SetText(text)
	return r
}

// SetText replaces the rendered text.
func (r *Renderer) SetText(text string) {
	r.tokens = tokenize.Tokenize(text)
	r.wordIndexes = make([]int, len(r.tokens))
	r.words = 0
	for i, tok := range r.tokens {
		if tok.Countable() {
			r.wordIndexes[i] = r.words
			r.words++
			continue
		}
		r.wordIndexes[i] = timing.None
	}
}

// Words returns the number of countable words, matching the timing indexes.
func (r *Renderer) Words() int {
	return r.words
}

// Render draws the text with word active highlighted; timing.None highlights
// nothing.
func (r *Renderer) Render(active int) string {
	var sb strings.Builder
	gap := strings.Repeat(" ", max(r.opts.LetterSpacing, 0))

	for i, tok := range r.tokens {
		if tok.Space {
			sb.WriteString(r.spaceLines(tok.Raw))
			continue
		}

		parts := make([]string, 0, 4)
		if tok.Leading != "" {
			parts = append(parts, r.spaced(tok.Leading))
		}
		if tok.Core != "" {
			lead, rest := r.opts.Bionic.Split(tok.Core)
			leadStyle, restStyle := r.lead, r.rest
			if r.wordIndexes[i] != timing.None && r.wordIndexes[i] == active {
				leadStyle, restStyle = r.activeLead, r.activeRest
			}
			parts = append(parts, leadStyle.Render(r.spaced(lead)))
			if rest != "" {
				parts = append(parts, restStyle.Render(r.spaced(rest)))
			}
		}
		if tok.Trailing != "" {
			parts = append(parts, r.spaced(tok.Trailing))
		}
		sb.WriteString(strings.Join(parts, gap))
	}

	out := sb.String()
	if r.opts.Width > 0 {
		out = r.re.NewStyle().Width(r.opts.Width).Render(out)
	}
	return out
}

// spaced inserts LetterSpacing blanks between the grapheme clusters of s.
func (r *Renderer) spaced(s string) string {
	if r.opts.LetterSpacing <= 0 || s == "" {
		return s
	}
	return strings.Join(bionic.Graphemes(s), strings.Repeat(" ", r.opts.LetterSpacing))
}

// spaceLines adds LineSpacing blank lines after every line break.
func (r *Renderer) spaceLines(ws string) string {
	if r.opts.LineSpacing <= 0 {
		return ws
	}
	return strings.ReplaceAll(ws, "\n", "\n"+strings.Repeat("\n", r.opts.LineSpacing))
}
