package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/caseguide/internal/clip"
	"github.com/abhisek/caseguide/internal/content"
	nav "github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/router"
	"github.com/abhisek/caseguide/internal/screen"
	guidescreen "github.com/abhisek/caseguide/internal/screens/guide"
	"github.com/abhisek/caseguide/internal/screens/history"
	"github.com/abhisek/caseguide/internal/screens/home"
	"github.com/abhisek/caseguide/internal/screens/welcome"
	wsscreen "github.com/abhisek/caseguide/internal/screens/worksheet"
	"github.com/abhisek/caseguide/internal/store"
	"github.com/abhisek/caseguide/internal/ui/layout"
	"github.com/abhisek/caseguide/internal/ui/markdown"
)

// Options holds the dependencies for the app.
type Options struct {
	Content *content.Guide

	// ContentPath is reloaded on change when Watch is set.
	ContentPath string
	Watch       bool

	Journal       store.JournalRepo // nil disables the journal
	Copier        clip.Copier
	Logger        *slog.Logger
	MarkdownStyle string
	DownloadDir   string
	ToastDuration time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	navigator *nav.Navigator
	guide     *guidescreen.GuideScreen
	width     int
	height    int
}

// newAppModel wires the navigator, the shared guide screen and the screen
// stack, starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	copier := opts.Copier
	if copier == nil {
		copier = clip.System{}
	}

	navOpts := []nav.Option{nav.WithLogger(logger)}
	if opts.Journal != nil {
		sessionID := uuid.NewString()
		logger.Info("Journal enabled.", "session", sessionID)
		navOpts = append(navOpts, nav.WithObserver(&journalObserver{
			repo:      opts.Journal,
			sessionID: sessionID,
			logger:    logger,
		}))
	}
	navigator := nav.NewNavigator(nav.NewProgress(), navOpts...)

	worksheet := func() screen.Screen { return wsscreen.New(copier) }
	gs := guidescreen.New(guidescreen.Options{
		Navigator:     navigator,
		Content:       opts.Content,
		Markdown:      markdown.New(opts.MarkdownStyle),
		Copier:        copier,
		DownloadDir:   opts.DownloadDir,
		ToastDuration: opts.ToastDuration,
		Worksheet:     worksheet,
		Logger:        logger,
	})

	homeOpts := home.Options{
		Guide:     func() screen.Screen { return gs },
		Worksheet: worksheet,
		Progress:  navigator.Projection,
	}
	if opts.Journal != nil {
		homeOpts.Journal = func() screen.Screen { return history.New(opts.Journal) }
	}
	homeFactory := func() screen.Screen { return home.New(homeOpts) }

	return AppModel{
		router:    router.New(welcome.New(homeFactory)),
		navigator: navigator,
		guide:     gs,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case guidescreen.ReloadMsg:
		// The guide screen outlives its place on the stack, so it hears
		// about reloads even while the home menu is showing.
		if m.router.Contains(m.guide) {
			return m, m.router.Broadcast(msg)
		}
		_, cmd := m.guide.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	percent := -1
	if active != nil {
		title = active.Title()
		if pr, ok := active.(screen.ProgressReporter); ok {
			percent = pr.Percent()
		}
	}

	header := layout.RenderHeader(title, percent, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))

	if opts.Watch && opts.ContentPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		err := content.Watch(watchCtx, opts.ContentPath, content.DefaultDebounce, func(g *content.Guide, err error) {
			p.Send(guidescreen.ReloadMsg{Guide: g, Err: err})
		})
		if err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
