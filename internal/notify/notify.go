// Package notify holds the transient messages shown over the guide: the
// locked-step explanations and clipboard feedback.
package notify

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/ui/theme"
)

const (
	// DefaultDuration is how long a toast stays up.
	DefaultDuration = 4 * time.Second
	// CopiedDuration is used for clipboard confirmations.
	CopiedDuration = 2 * time.Second
)

// LockedMessage explains why a main step cannot be opened yet.
func LockedMessage(m guide.MainStep) string {
	switch m {
	case guide.MainStep2:
		return "Please complete Step 1 first to unlock Step 2."
	case guide.MainStep3:
		return "Please choose your path in Step 2 to unlock Step 3."
	case guide.MainStep4:
		return "Please choose your information format in Step 3 to unlock Step 4."
	case guide.MainStep5:
		return "Please share the information in Step 4 to unlock Step 5."
	case guide.MainStep6:
		return "Please complete Step 5 to unlock Step 6."
	default:
		return "Please complete the previous steps to unlock this step."
	}
}

// Level selects the toast colour.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// DismissMsg hides the toast that was shown with the same generation.
type DismissMsg struct {
	gen int
}

// Toast is a single-line message that hides itself after a fixed duration.
type Toast struct {
	Text     string
	Level    Level
	Visible  bool
	duration time.Duration
	gen      int
}

// NewToast creates a hidden toast. A non-positive duration uses
// DefaultDuration.
func NewToast(d time.Duration) Toast {
	if d <= 0 {
		d = DefaultDuration
	}
	return Toast{duration: d}
}

// Show displays text and returns the command that will dismiss it.
func (t *Toast) Show(text string, level Level) tea.Cmd {
	return t.ShowFor(text, level, t.duration)
}

// ShowFor is Show with an explicit duration.
func (t *Toast) ShowFor(text string, level Level, d time.Duration) tea.Cmd {
	t.gen++
	t.Text = text
	t.Level = level
	t.Visible = true

	gen := t.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{gen: gen}
	})
}

// Update hides the toast when its own dismiss message arrives. A dismiss
// scheduled for an older message is ignored.
func (t Toast) Update(msg tea.Msg) Toast {
	if d, ok := msg.(DismissMsg); ok && d.gen == t.gen {
		t.Visible = false
	}
	return t
}

// View renders the toast, or an empty string when hidden.
func (t Toast) View(width int) string {
	if !t.Visible {
		return ""
	}
	bg := theme.Secondary
	if t.Level == LevelError {
		bg = theme.Error
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(theme.Text).
		Bold(true).
		Padding(0, 2).
		MaxWidth(width).
		Render(t.Text)
}
