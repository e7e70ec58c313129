package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nav "github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/router"
	"github.com/abhisek/caseguide/internal/screen"
	"github.com/abhisek/caseguide/internal/ui/components"
)

// HomeScreen is the entry menu.
type HomeScreen struct {
	menu     components.Menu
	progress func() nav.Projection
}

var _ screen.Screen = (*HomeScreen)(nil)

// Options names the screens the menu opens.
type Options struct {
	Guide     func() screen.Screen
	Worksheet func() screen.Screen
	// Journal opens the journal browser. Nil hides the menu item.
	Journal func() screen.Screen

	// Progress reports the session's guide progress for the status card.
	Progress func() nav.Projection
}

// New creates the home screen.
func New(opts Options) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "Open the guide", Hint: "six steps, about 45 minutes", Action: push(opts.Guide)},
		{Label: "Case study worksheet", Hint: "answer from memory, copy to your AI", Action: push(opts.Worksheet)},
	}
	if opts.Journal != nil {
		items = append(items, components.MenuItem{Label: "Journal", Hint: "past sessions", Action: push(opts.Journal)})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})

	return &HomeScreen{
		menu:     components.NewMenu(items),
		progress: opts.Progress,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{renderTitle(cw)}
	if h.progress != nil {
		sections = append(sections, renderStatus(h.progress(), cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
