package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	nav "github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/ui/components"
	"github.com/abhisek/caseguide/internal/ui/theme"
)

const titleCompact = "C A S E   S T U D Y   G U I D E"

// contentWidth returns the uniform inner width used for all sections so
// the boxes line up.
func contentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 60))
}

func renderTitle(cw int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(titleCompact)
	tagline := theme.Subtitle.Render("From finished project to published case study")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n\n" + tagline)
}

// renderStatus summarises guide progress for this session.
func renderStatus(proj nav.Projection, cw int) string {
	var line string
	switch proj.Current {
	case nav.StepIntro:
		line = theme.Body.Render("Not started yet.")
	case nav.StepCompletion:
		line = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Guide complete!")
	default:
		line = theme.Body.Render(fmt.Sprintf("In progress at %s.", stepName(proj.Current)))
	}

	if proj.Current == nav.StepCompletion {
		return theme.Card.Width(cw).Render(line)
	}
	bar := components.NewProgressBar("", proj.Percent, true, cw-4).View()
	return theme.Card.Width(cw).Render(line + "\n" + bar)
}

func stepName(id nav.StepID) string {
	m, ok := nav.Owner(id)
	if !ok {
		return id.String()
	}
	if m == nav.MainIntro {
		return "the intro"
	}
	return "Step " + m.Label()
}

func renderMenu(menu components.Menu, cw int) string {
	return theme.Card.Width(cw).Render(menu.View())
}
