package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	nav "github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/router"
	"github.com/abhisek/caseguide/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.title }
func (s *stubScreen) Title() string                          { return s.title }

func newTestHome(n *nav.Navigator) *HomeScreen {
	return New(Options{
		Guide:     func() screen.Screen { return &stubScreen{title: "Guide"} },
		Worksheet: func() screen.Screen { return &stubScreen{title: "Worksheet"} },
		Progress:  n.Projection,
	})
}

func TestHome_MenuPushesScreens(t *testing.T) {
	tests := []struct {
		downs int
		want  string
	}{
		{0, "Guide"},
		{1, "Worksheet"},
	}
	for _, tt := range tests {
		h := newTestHome(nav.NewNavigator(nav.NewProgress()))
		for i := 0; i < tt.downs; i++ {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("%s: expected command", tt.want)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("%s: expected PushScreenMsg", tt.want)
		}
		if push.Screen.Title() != tt.want {
			t.Errorf("pushed %q, want %q", push.Screen.Title(), tt.want)
		}
	}
}

func TestHome_QuitItem(t *testing.T) {
	h := newTestHome(nav.NewNavigator(nav.NewProgress()))
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHome_StatusFollowsProgress(t *testing.T) {
	n := nav.NewNavigator(nav.NewProgress())
	h := newTestHome(n)

	if !strings.Contains(h.View(100, 30), "Not started yet.") {
		t.Error("fresh guide should read not started")
	}

	if _, err := n.Navigate(nav.Step1); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !strings.Contains(h.View(100, 30), "In progress at Step 1.") {
		t.Error("status should name the current step")
	}
}

func TestHome_JournalItemOnlyWhenEnabled(t *testing.T) {
	n := nav.NewNavigator(nav.NewProgress())
	if strings.Contains(newTestHome(n).View(100, 30), "Journal") {
		t.Error("journal item should be hidden without a journal")
	}

	h := New(Options{
		Guide:     func() screen.Screen { return &stubScreen{title: "Guide"} },
		Worksheet: func() screen.Screen { return &stubScreen{title: "Worksheet"} },
		Journal:   func() screen.Screen { return &stubScreen{title: "Journal"} },
		Progress:  n.Projection,
	})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Journal" {
		t.Error("third item should open the journal")
	}
}
