package guide

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/caseguide/internal/content"
	"github.com/abhisek/caseguide/internal/ui/components"
	"github.com/abhisek/caseguide/internal/ui/theme"
)

type itemKind int

const (
	itemSection itemKind = iota
	itemPrompt
	itemAction
)

// item is one focusable row: a collapsible section, a prompt box or a button.
type item struct {
	kind  itemKind
	index int
}

// itemsOf lists a step's focusable rows in display order.
func itemsOf(st *content.Step) []item {
	out := make([]item, 0, len(st.Sections)+len(st.Prompts)+len(st.Actions))
	for i := range st.Sections {
		out = append(out, item{kind: itemSection, index: i})
	}
	for i := range st.Prompts {
		out = append(out, item{kind: itemPrompt, index: i})
	}
	for i := range st.Actions {
		out = append(out, item{kind: itemAction, index: i})
	}
	return out
}

const sidebarWidth = 34

func (s *GuideScreen) View(width, height int) string {
	proj := s.nav.Projection()

	top := []string{
		components.StepMarkers{Projection: proj}.View(),
		components.NewProgressBar("", proj.Percent, true, min(width-4, 60)).View(),
		"",
	}
	toast := s.toast.View(width - 4)

	st, ok := s.step()
	if !ok {
		top = append(top, theme.Hint.Render("No content for "+s.nav.Progress().Current.String()+"."))
		return pad(strings.Join(top, "\n"))
	}

	mainWidth := width - 4
	var sidebar string
	if st.Sidebar != nil && s.sidebarOpen {
		if width >= 90 {
			mainWidth -= sidebarWidth + 2
			sidebar = s.renderSidebar(st.Sidebar, sidebarWidth)
		}
	}

	body, focusLine := s.renderMain(st, mainWidth)
	if st.Sidebar != nil && s.sidebarOpen && sidebar == "" {
		// Narrow terminal: the checklist goes under the step text.
		body += "\n\n" + s.renderSidebar(st.Sidebar, mainWidth)
	}

	viewHeight := height - len(top)
	if toast != "" {
		viewHeight -= 2
	}
	body = s.window(body, focusLine, max(1, viewHeight))

	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(mainWidth).Render(body), "  ", sidebar)
	}

	out := strings.Join(top, "\n") + "\n" + body
	if toast != "" {
		out += "\n\n" + toast
	}
	return pad(out)
}

func pad(s string) string {
	return lipgloss.NewStyle().Padding(0, 2).Render(s)
}

// renderMain renders the step body and its items, returning the text and
// the line on which the focused item starts.
func (s *GuideScreen) renderMain(st *content.Step, width int) (string, int) {
	var blocks []string
	if st.Body != "" {
		blocks = append(blocks, s.md.Render(st.Body, width))
	}

	focusLine := 0
	lines := func() int {
		if len(blocks) == 0 {
			return 0
		}
		return lipgloss.Height(strings.Join(blocks, "\n"))
	}

	for i, it := range itemsOf(st) {
		focused := i == s.focus
		if focused {
			focusLine = lines()
		}
		switch it.kind {
		case itemSection:
			blocks = append(blocks, s.renderSection(st.Sections[it.index], s.expanded[it.index], focused, width))
		case itemPrompt:
			blocks = append(blocks, renderPrompt(st.Prompts[it.index], focused, width))
		case itemAction:
			a := st.Actions[it.index]
			blocks = append(blocks, components.Button{Label: a.Label, Focused: focused, Primary: a.Primary}.View())
		}
	}
	return strings.Join(blocks, "\n"), focusLine
}

func (s *GuideScreen) renderSection(sec content.Text, open, focused bool, width int) string {
	marker := "▸ "
	if open {
		marker = "▾ "
	}
	style := theme.Unselected
	if focused {
		style = theme.Selected
	}
	head := style.Render(marker + sec.Title)
	if !open {
		return head
	}
	return head + "\n" + s.md.Render(sec.Body, width-2)
}

func renderPrompt(p content.Prompt, focused bool, width int) string {
	box := theme.PromptBox
	if focused {
		box = theme.PromptBoxFocused
	}
	title := theme.Title.Render(p.Title) + "  " + theme.Hint.Render("enter or c to copy")
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 4).Render(strings.TrimSpace(p.Text))
	return box.Width(width).Render(title + "\n" + text)
}

func (s *GuideScreen) renderSidebar(sb *content.Text, width int) string {
	head := theme.Title.Render(sb.Title) + "  " + theme.Hint.Render("s to hide")
	return theme.Sidebar.Width(width).Render(head + "\n" + s.md.Render(sb.Body, width-4))
}

// window cuts body down to height lines. It follows the focused item
// unless the user scrolled with page keys.
func (s *GuideScreen) window(body string, focusLine, height int) string {
	lines := strings.Split(body, "\n")
	if len(lines) <= height {
		return body
	}

	offset := s.scroll
	if !s.freeScroll {
		offset = 0
		if focusLine >= height {
			offset = focusLine - height + 3
		}
	}
	offset = max(0, min(offset, len(lines)-height))
	return strings.Join(lines[offset:offset+height], "\n")
}
