package guide

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/caseguide/internal/clip"
	"github.com/abhisek/caseguide/internal/content"
	"github.com/abhisek/caseguide/internal/export"
	nav "github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/notify"
	"github.com/abhisek/caseguide/internal/router"
	"github.com/abhisek/caseguide/internal/screen"
	"github.com/abhisek/caseguide/internal/ui/layout"
	"github.com/abhisek/caseguide/internal/ui/markdown"
)

// Options wires the guide screen to its collaborators.
type Options struct {
	Navigator *nav.Navigator
	Content   *content.Guide
	Markdown  *markdown.Renderer
	Copier    clip.Copier

	DownloadDir   string
	ToastDuration time.Duration

	// Worksheet builds the screen opened by worksheet actions. Nil hides
	// the worksheet.
	Worksheet func() screen.Screen

	Logger *slog.Logger
}

// GuideScreen shows the current step and drives the navigator from keys.
type GuideScreen struct {
	nav       *nav.Navigator
	content   *content.Guide
	md        *markdown.Renderer
	copier    clip.Copier
	dir       string
	worksheet func() screen.Screen
	logger    *slog.Logger

	toast notify.Toast

	// shown is the step the per-step state below belongs to.
	shown       nav.StepID
	focus       int
	expanded    map[int]bool
	sidebarOpen bool
	scroll      int
	freeScroll  bool
}

var (
	_ screen.Screen           = (*GuideScreen)(nil)
	_ screen.KeyHintProvider  = (*GuideScreen)(nil)
	_ screen.ProgressReporter = (*GuideScreen)(nil)
)

// New creates the guide screen positioned at the navigator's current step.
func New(opts Options) *GuideScreen {
	if opts.Content == nil {
		opts.Content = content.Default()
	}
	if opts.Markdown == nil {
		opts.Markdown = markdown.New(markdown.StyleAuto)
	}
	if opts.Copier == nil {
		opts.Copier = clip.System{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	s := &GuideScreen{
		nav:       opts.Navigator,
		content:   opts.Content,
		md:        opts.Markdown,
		copier:    opts.Copier,
		dir:       opts.DownloadDir,
		worksheet: opts.Worksheet,
		logger:    opts.Logger,
		toast:     notify.NewToast(opts.ToastDuration),
		shown:     nav.StepNone,
	}
	s.enter(s.nav.Progress().Current)
	return s
}

func (s *GuideScreen) Init() tea.Cmd {
	return nil
}

func (s *GuideScreen) Title() string {
	if st, ok := s.step(); ok {
		return st.Title
	}
	return "Guide"
}

// Percent reports overall progress for the header. The completion step is
// off the progress axis and hides the readout.
func (s *GuideScreen) Percent() int {
	if s.nav.Progress().Current == nav.StepCompletion {
		return -1
	}
	return s.nav.Projection().Percent
}

func (s *GuideScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+←/→", Description: "Back/Next"},
		{Key: "0-6", Description: "Jump"},
	}
	if st, ok := s.step(); ok {
		if st.Sidebar != nil {
			hints = append(hints, layout.KeyHint{Key: "s", Description: "Checklist"})
		}
		if len(st.Prompts) > 0 {
			hints = append(hints, layout.KeyHint{Key: "c", Description: "Copy"})
		}
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case notify.DismissMsg:
		s.toast = s.toast.Update(msg)
		return s, nil

	case ReloadMsg:
		return s, s.reload(msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *GuideScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "up", "k":
		s.moveFocus(-1)
	case "down", "j", "tab":
		s.moveFocus(1)
	case "pgup":
		s.freeScroll = true
		s.scroll = max(0, s.scroll-pageStep)
	case "pgdown":
		s.freeScroll = true
		s.scroll += pageStep
	case "enter", "space":
		return s.activate()
	case "c":
		return s.copyPrompt()
	case "s":
		if st, ok := s.step(); ok && st.Sidebar != nil {
			s.sidebarOpen = !s.sidebarOpen
		}
	case "ctrl+left":
		return s.apply(s.nav.Previous())
	case "ctrl+right":
		if st, ok := s.step(); ok {
			if a, ok := st.Primary(); ok {
				return s.runAction(a)
			}
		}
	case "R":
		return s.apply(s.nav.Reset())
	case "0", "1", "2", "3", "4", "5", "6":
		return s.apply(s.nav.JumpTo(nav.MainStep(key[0] - '0')))
	}
	return nil
}

const pageStep = 10

// step returns the content for the current step.
func (s *GuideScreen) step() (*content.Step, bool) {
	return s.content.Step(s.nav.Progress().Current)
}

// enter resets per-step view state when the current step changes.
func (s *GuideScreen) enter(current nav.StepID) {
	if current == s.shown {
		return
	}
	s.shown = current
	s.expanded = make(map[int]bool)
	s.scroll = 0
	s.freeScroll = false
	s.focus = 0

	st, ok := s.content.Step(current)
	if !ok {
		return
	}
	s.sidebarOpen = st.Sidebar != nil
	for i, it := range itemsOf(st) {
		if it.kind == itemAction && st.Actions[it.index].Primary {
			s.focus = i
			break
		}
	}
}

func (s *GuideScreen) moveFocus(delta int) {
	st, ok := s.step()
	if !ok {
		return
	}
	n := len(itemsOf(st))
	if n == 0 {
		return
	}
	s.focus = max(0, min(n-1, s.focus+delta))
	s.freeScroll = false
}

// apply turns a navigator outcome into view state and feedback.
func (s *GuideScreen) apply(res nav.Result, err error) tea.Cmd {
	if err != nil {
		var locked *nav.LockedStepError
		if errors.As(err, &locked) {
			return s.toast.Show(notify.LockedMessage(locked.Step), notify.LevelError)
		}
		s.logger.Error("Navigation failed.", "err", err)
		return s.toast.Show(err.Error(), notify.LevelError)
	}
	s.enter(res.Current)
	return nil
}

func (s *GuideScreen) activate() tea.Cmd {
	st, ok := s.step()
	if !ok {
		return nil
	}
	items := itemsOf(st)
	if s.focus < 0 || s.focus >= len(items) {
		return nil
	}

	it := items[s.focus]
	switch it.kind {
	case itemSection:
		s.expanded[it.index] = !s.expanded[it.index]
		return nil
	case itemPrompt:
		return s.copy(st.Prompts[it.index].Text)
	default:
		return s.runAction(st.Actions[it.index])
	}
}

func (s *GuideScreen) runAction(a content.Action) tea.Cmd {
	switch a.Kind {
	case content.ActionNext:
		return s.apply(s.nav.Navigate(a.Step))
	case content.ActionBack:
		return s.apply(s.nav.Previous())
	case content.ActionBranch:
		point, _ := nav.Owner(a.Step)
		return s.apply(s.nav.SelectBranch(point, a.Step))
	case content.ActionAdventure:
		return s.apply(s.nav.SelectAdventure(a.Step))
	case content.ActionFinish:
		return s.apply(s.nav.Finish())
	case content.ActionReset:
		return s.apply(s.nav.Reset())
	case content.ActionWorksheet:
		if s.worksheet == nil {
			return s.toast.Show("The worksheet is not available here.", notify.LevelError)
		}
		ws := s.worksheet()
		return func() tea.Msg { return router.PushScreenMsg{Screen: ws} }
	case content.ActionDownload:
		p, err := export.WriteInterviewQuestions(s.dir)
		if err != nil {
			s.logger.Error("Download failed.", "err", err)
			return s.toast.Show("Could not save the interview questions: "+err.Error(), notify.LevelError)
		}
		s.logger.Info("Interview questions saved.", "path", p)
		return s.toast.Show("Saved "+p, notify.LevelInfo)
	}
	return nil
}

// copyPrompt copies the focused prompt, or the step's first prompt when
// focus is elsewhere.
func (s *GuideScreen) copyPrompt() tea.Cmd {
	st, ok := s.step()
	if !ok || len(st.Prompts) == 0 {
		return nil
	}
	items := itemsOf(st)
	if s.focus >= 0 && s.focus < len(items) && items[s.focus].kind == itemPrompt {
		return s.copy(st.Prompts[items[s.focus].index].Text)
	}
	return s.copy(st.Prompts[0].Text)
}

func (s *GuideScreen) copy(text string) tea.Cmd {
	if err := s.copier.Copy(text); err != nil {
		s.logger.Warn("Copy failed.", "err", err)
		return s.toast.Show("Copy failed. Select the text and copy it manually.", notify.LevelError)
	}
	return s.toast.ShowFor("Copied!", notify.LevelInfo, notify.CopiedDuration)
}

func (s *GuideScreen) reload(msg ReloadMsg) tea.Cmd {
	if msg.Err != nil {
		s.logger.Warn("Guide reload rejected.", "err", msg.Err)
		return s.toast.Show(fmt.Sprintf("Guide not reloaded: %v", msg.Err), notify.LevelError)
	}
	if msg.Guide == nil {
		return nil
	}

	s.content = msg.Guide
	// Force per-step state to rebuild against the new content.
	s.shown = nav.StepNone
	s.enter(s.nav.Progress().Current)
	s.logger.Info("Guide reloaded.")
	return s.toast.Show("Guide content reloaded.", notify.LevelInfo)
}
