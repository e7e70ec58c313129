package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/caseguide/internal/screen"
	"github.com/abhisek/caseguide/internal/store"
	"github.com/abhisek/caseguide/internal/ui/layout"
	"github.com/abhisek/caseguide/internal/ui/theme"
)

// recentLimit caps how many journal entries the screen loads.
const recentLimit = 200

type historyLoadedMsg struct {
	Entries []store.Entry
	Err     error
}

// sessionRow summarises one guide session from its journal entries.
type sessionRow struct {
	ID      string
	Started time.Time
	Entries []store.Entry // oldest first
	Locked  int
	Percent int // percent after the latest entry
}

// HistoryScreen lists past guide sessions recorded in the journal.
type HistoryScreen struct {
	repo     store.JournalRepo
	sessions []sessionRow
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.JournalRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.repo.Recent(context.Background(), store.QueryOpts{Limit: recentLimit})
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Journal"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = groupSessions(msg.Entries)
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

// groupSessions turns newest-first entries into sessions, newest session
// first, each with its entries in the order they happened.
func groupSessions(entries []store.Entry) []sessionRow {
	var rows []sessionRow
	index := make(map[string]int)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		n, ok := index[e.SessionID]
		if !ok {
			n = len(rows)
			index[e.SessionID] = n
			rows = append(rows, sessionRow{ID: e.SessionID, Started: e.Timestamp})
		}
		r := &rows[n]
		r.Entries = append(r.Entries, e)
		r.Percent = e.Percent
		if e.Rejected() {
			r.Locked++
		}
	}
	// rows were built oldest first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading journal...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing recorded yet. Open the guide to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		moves := fmt.Sprintf("%d move", len(sess.Entries))
		if len(sess.Entries) != 1 {
			moves += "s"
		}
		locked := ""
		if sess.Locked > 0 {
			locked = fmt.Sprintf("  %d locked", sess.Locked)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s  reached %d%%%s",
			prefix, sess.Started.Local().Format("Jan 02, 2006 15:04"), shortID(sess.ID), moves, sess.Percent, locked)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, e := range sess.Entries {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderEntry(e)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func renderEntry(e store.Entry) string {
	if e.Rejected() {
		return lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("    %s  %-9s %s  locked: %s", e.Timestamp.Local().Format("15:04:05"), e.Op, e.From, e.Locked))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("    %s  %-9s %s → %s  %d%%", e.Timestamp.Local().Format("15:04:05"), e.Op, e.From, e.To, e.Percent))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
