package worksheet

import (
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/caseguide/internal/clip"
	"github.com/abhisek/caseguide/internal/notify"
	"github.com/abhisek/caseguide/internal/screen"
	"github.com/abhisek/caseguide/internal/ui/components"
	"github.com/abhisek/caseguide/internal/ui/layout"
	"github.com/abhisek/caseguide/internal/ui/theme"
	ws "github.com/abhisek/caseguide/internal/worksheet"
)

// errorBannerDuration is how long a generate error stays on screen.
const errorBannerDuration = 5 * time.Second

const inputWidth = 56

// bannerDismissMsg clears the error banner it was scheduled for.
type bannerDismissMsg struct {
	gen int
}

// WorksheetScreen collects worksheet answers and formats them for the
// user's AI tool.
type WorksheetScreen struct {
	fields []ws.Field
	inputs []components.TextArea
	focus  int

	output string

	banner    string
	bannerGen int

	confirmClear bool

	copier clip.Copier
	toast  notify.Toast
}

var (
	_ screen.Screen          = (*WorksheetScreen)(nil)
	_ screen.KeyHintProvider = (*WorksheetScreen)(nil)
)

// New creates the worksheet screen with the first field focused.
func New(copier clip.Copier) *WorksheetScreen {
	if copier == nil {
		copier = clip.System{}
	}
	fields := ws.Fields()
	inputs := make([]components.TextArea, len(fields))
	for i, f := range fields {
		inputs[i] = components.NewTextArea(f.Label, f.Prompt, f.Required, inputWidth)
	}
	s := &WorksheetScreen{
		fields: fields,
		inputs: inputs,
		copier: copier,
		toast:  notify.NewToast(notify.DefaultDuration),
	}
	s.inputs[0].Focus()
	return s
}

func (s *WorksheetScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *WorksheetScreen) Title() string {
	return "Worksheet"
}

func (s *WorksheetScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "y", Description: "Clear everything"},
			{Key: "any key", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab/Shift+Tab", Description: "Field"},
		{Key: "Ctrl+G", Description: "Generate"},
		{Key: "Ctrl+Y", Description: "Copy"},
		{Key: "Ctrl+X", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

// Answers returns the current field values keyed by field key.
func (s *WorksheetScreen) Answers() ws.Answers {
	a := make(ws.Answers, len(s.fields))
	for i, f := range s.fields {
		a[f.Key] = s.inputs[i].Value()
	}
	return a
}

func (s *WorksheetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bannerDismissMsg:
		if msg.gen == s.bannerGen {
			s.banner = ""
		}
		return s, nil

	case notify.DismissMsg:
		s.toast = s.toast.Update(msg)
		return s, nil

	case tea.KeyPressMsg:
		if s.confirmClear {
			s.confirmClear = false
			if msg.String() == "y" {
				s.clear()
			}
			return s, nil
		}

		switch msg.String() {
		case "tab":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab":
			return s, s.setFocus(s.focus - 1)
		case "ctrl+g":
			return s, s.generate()
		case "ctrl+y":
			return s, s.copyOutput()
		case "ctrl+x":
			s.confirmClear = true
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

// setFocus moves focus to field i, wrapping at both ends.
func (s *WorksheetScreen) setFocus(i int) tea.Cmd {
	n := len(s.inputs)
	i = ((i % n) + n) % n
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[i].Focus()
}

func (s *WorksheetScreen) generate() tea.Cmd {
	out, err := ws.Format(s.Answers())
	if err != nil {
		var missing *ws.MissingFieldsError
		if errors.As(err, &missing) {
			s.markMissing(missing.Keys)
		}
		s.output = ""
		return s.showBanner(err.Error())
	}

	for i := range s.inputs {
		s.inputs[i].Missing = false
	}
	s.banner = ""
	s.output = out
	return nil
}

func (s *WorksheetScreen) markMissing(keys []string) {
	miss := make(map[string]bool, len(keys))
	for _, k := range keys {
		miss[k] = true
	}
	for i, f := range s.fields {
		s.inputs[i].Missing = miss[f.Key]
	}
}

func (s *WorksheetScreen) showBanner(text string) tea.Cmd {
	s.bannerGen++
	s.banner = text
	gen := s.bannerGen
	return tea.Tick(errorBannerDuration, func(time.Time) tea.Msg {
		return bannerDismissMsg{gen: gen}
	})
}

func (s *WorksheetScreen) copyOutput() tea.Cmd {
	if s.output == "" {
		return s.toast.Show("Generate the output first (Ctrl+G).", notify.LevelError)
	}
	if err := s.copier.Copy(s.output); err != nil {
		return s.toast.Show("Copy failed. Select the output and copy it manually.", notify.LevelError)
	}
	return s.toast.ShowFor("Copied!", notify.LevelInfo, notify.CopiedDuration)
}

func (s *WorksheetScreen) clear() {
	for i := range s.inputs {
		s.inputs[i].Reset()
	}
	s.output = ""
	s.banner = ""
}

func (s *WorksheetScreen) View(width, height int) string {
	var top []string
	top = append(top,
		theme.Title.Render("Case study worksheet"),
		theme.Subtitle.Render("Answer from memory. Fields marked * are required."),
		"",
	)
	if s.banner != "" {
		top = append(top, theme.Banner.MaxWidth(width-4).Render(s.banner), "")
	}
	if s.confirmClear {
		top = append(top, theme.Banner.Render("Clear all answers? (y/n)"), "")
	}

	var bottom []string
	if s.output != "" {
		lines := strings.Split(strings.TrimRight(s.output, "\n"), "\n")
		keep := max(3, height/3)
		if len(lines) > keep {
			lines = append(lines[:keep], "…")
		}
		bottom = append(bottom, "",
			theme.Title.Render("Output")+"  "+theme.Hint.Render("ctrl+y to copy"),
			theme.Card.Width(min(width-4, inputWidth+4)).Render(strings.Join(lines, "\n")),
		)
	}
	if t := s.toast.View(width - 4); t != "" {
		bottom = append(bottom, "", t)
	}

	avail := height - len(top) - lipgloss.Height(strings.Join(bottom, "\n"))
	fields := s.fieldWindow(max(1, avail))

	out := strings.Join(top, "\n") + "\n" + fields
	if len(bottom) > 0 {
		out += "\n" + strings.Join(bottom, "\n")
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(out)
}

// fieldWindow renders as many inputs as fit in height, keeping the focused
// one visible.
func (s *WorksheetScreen) fieldWindow(height int) string {
	const perField = 5 // label, three lines, gap
	count := max(1, height/perField)
	start := 0
	if s.focus >= count {
		start = s.focus - count + 1
	}
	end := min(len(s.inputs), start+count)

	views := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		views = append(views, s.inputs[i].View())
	}
	more := theme.Hint.Render("  ⋯")
	out := strings.Join(views, "\n\n")
	if start > 0 {
		out = more + "\n" + out
	}
	if end < len(s.inputs) {
		out += "\n" + more
	}
	return out
}
