package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/caseguide/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with a label and a required marker.
type TextArea struct {
	Label    string
	Required bool
	Model    textarea.Model

	// Missing is set when the field failed validation.
	Missing bool
}

// NewTextArea creates a blurred text area.
func NewTextArea(label, placeholder string, required bool, width int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(3)

	return TextArea{
		Label:    label,
		Required: required,
		Model:    ta,
	}
}

// Focus focuses the text area and returns the cursor blink command.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Focused reports whether the text area has focus.
func (t TextArea) Focused() bool {
	return t.Model.Focused()
}

// SetWidth resizes the input.
func (t *TextArea) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Missing && t.Model.Value() != "" {
		t.Missing = false
	}
	return t, cmd
}

// View renders the label above the input.
func (t TextArea) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(t.Focused()).Render(t.Label)
	if t.Required {
		label += lipgloss.NewStyle().Foreground(theme.Error).Render(" *")
	}
	if t.Missing {
		label += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("required")
	}
	return label + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextArea) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the input value.
func (t *TextArea) Reset() {
	t.Model.Reset()
	t.Missing = false
}
