package components

import (
	"strings"

	"github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/ui/theme"
)

// StepMarkers renders the row of main-step markers from a projection.
type StepMarkers struct {
	Projection guide.Projection
}

// View renders the markers separated by thin connectors.
func (s StepMarkers) View() string {
	parts := make([]string, 0, len(s.Projection.Markers))
	for _, m := range s.Projection.Markers {
		parts = append(parts, markerView(m))
	}
	return strings.Join(parts, theme.Subtitle.Render(" ─ "))
}

func markerView(m guide.Marker) string {
	label := m.Step.Label()
	switch m.Status {
	case guide.StatusActive:
		return theme.MarkerActive.Render(" " + label + " ")
	case guide.StatusCompleted:
		return theme.MarkerCompleted.Render("✓ " + label)
	case guide.StatusLocked:
		return theme.MarkerLocked.Render("· " + label)
	default:
		return theme.MarkerAvailable.Render("○ " + label)
	}
}
