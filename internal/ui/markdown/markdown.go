// Package markdown renders guide text for the terminal with glamour.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// StyleAuto picks a dark or light style from the terminal background.
const StyleAuto = "auto"

// Renderer wraps a glamour renderer and rebuilds it when the wrap width
// changes. The zero value is not usable; use New.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
	cache map[string]string
}

// New returns a renderer for the given glamour style name ("auto", "dark",
// "light", "notty", "ascii", ...).
func New(style string) *Renderer {
	if style == "" {
		style = StyleAuto
	}
	return &Renderer{style: style}
}

// Render renders md wrapped to width. If glamour fails the source text is
// returned unchanged so the guide stays readable.
func (r *Renderer) Render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	if r.term == nil || r.width != width {
		opt := glamour.WithStandardStyle(r.style)
		if r.style == StyleAuto {
			opt = glamour.WithAutoStyle()
		}
		term, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
		if err != nil {
			return md
		}
		r.term, r.width = term, width
		r.cache = make(map[string]string)
	}
	if out, ok := r.cache[md]; ok {
		return out
	}

	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	out = strings.Trim(out, "\n")
	r.cache[md] = out
	return out
}
