package components

import (
	"github.com/abhisek/caseguide/internal/ui/theme"
)

// Button is a styled button label. Focused wins over Primary.
type Button struct {
	Label   string
	Focused bool
	Primary bool
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	case b.Primary:
		return theme.ButtonPrimary.Render("  " + b.Label + " →")
	default:
		return theme.ButtonInactive.Render("  " + b.Label)
	}
}
