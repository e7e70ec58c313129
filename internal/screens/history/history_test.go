package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/caseguide/internal/store"
)

type fakeRepo struct {
	entries []store.Entry
	err     error
}

func (f *fakeRepo) Append(context.Context, *store.Entry) error { return nil }
func (f *fakeRepo) Recent(context.Context, store.QueryOpts) ([]store.Entry, error) {
	return f.entries, f.err
}
func (f *fakeRepo) StepVisits(context.Context) ([]store.StepVisit, error) { return nil, nil }
func (f *fakeRepo) Clear(context.Context) (int64, error)                  { return 0, nil }

// newestFirst lists two sessions the way Recent returns them.
func newestFirst() []store.Entry {
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return []store.Entry{
		{SessionID: "bbbbbbbb-2", Op: "navigate", From: "intro", To: "step1", Percent: 29, Timestamp: t0.Add(time.Hour)},
		{SessionID: "aaaaaaaa-1", Op: "navigate", From: "step1", To: "step1", Locked: "step3", Percent: 29, Timestamp: t0.Add(2 * time.Minute)},
		{SessionID: "aaaaaaaa-1", Op: "navigate", From: "intro", To: "step1", Percent: 29, Timestamp: t0.Add(time.Minute)},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestGroupSessions(t *testing.T) {
	rows := groupSessions(newestFirst())
	if len(rows) != 2 {
		t.Fatalf("sessions = %d, want 2", len(rows))
	}
	if rows[0].ID != "bbbbbbbb-2" {
		t.Errorf("newest session first, got %s", rows[0].ID)
	}

	older := rows[1]
	if len(older.Entries) != 2 || older.Locked != 1 {
		t.Fatalf("older session = %+v", older)
	}
	if older.Entries[0].From != "intro" {
		t.Error("entries should be oldest first within a session")
	}
	if !older.Started.Equal(older.Entries[0].Timestamp) {
		t.Error("session start should be its first entry")
	}
}

func TestHistoryScreen_LoadAndExpand(t *testing.T) {
	s := New(&fakeRepo{entries: newestFirst()})
	if !strings.Contains(s.View(100, 30), "Loading journal") {
		t.Error("should show loading before the query returns")
	}
	load(t, s)

	view := s.View(100, 30)
	if !strings.Contains(view, "bbbbbbbb") || !strings.Contains(view, "aaaaaaaa") {
		t.Fatalf("both sessions should render:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.expanded[1] {
		t.Fatal("enter should expand the selected session")
	}
	if !strings.Contains(s.View(100, 30), "locked: step3") {
		t.Error("expanded session should list its rejected move")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	if !strings.Contains(s.View(100, 30), "Nothing recorded yet") {
		t.Error("empty journal message missing")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("db locked")})
	load(t, s)
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("load error should render")
	}
}
