package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenTwiceKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.JournalRepo().Append(ctx, &Entry{SessionID: "a", Op: "navigate", From: "intro", To: "step1", Percent: 29}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.JournalRepo().Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entries after reopen = %d, want 1", len(got))
	}
}

func TestJournalAppendAndRecent(t *testing.T) {
	repo := openTestStore(t).JournalRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		{SessionID: "s1", Op: "navigate", From: "intro", To: "step1", Percent: 29, Timestamp: base},
		{SessionID: "s1", Op: "navigate", From: "step1", To: "step3", Locked: "3", Percent: 29, Timestamp: base.Add(time.Second)},
		{SessionID: "s2", Op: "branch", From: "step2", To: "step2a", Percent: 43, Timestamp: base.Add(2 * time.Second)},
	}
	for i := range entries {
		if err := repo.Append(ctx, &entries[i]); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if entries[i].ID == 0 {
			t.Fatalf("append %d: ID not set", i)
		}
	}

	got, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].To != "step2a" || got[2].To != "step1" {
		t.Errorf("order = %s,%s,%s, want newest first", got[0].To, got[1].To, got[2].To)
	}
	if !got[1].Rejected() || got[1].Locked != "3" {
		t.Errorf("entry 1 locked = %q, want rejected by step 3", got[1].Locked)
	}
	if !got[2].Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", got[2].Timestamp, base)
	}
}

func TestJournalRecentFilters(t *testing.T) {
	repo := openTestStore(t).JournalRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, sess := range []string{"a", "b", "a", "a"} {
		e := &Entry{SessionID: sess, Op: "navigate", From: "intro", To: "step1", Percent: 29, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"all", QueryOpts{}, 4},
		{"limit", QueryOpts{Limit: 2}, 2},
		{"session", QueryOpts{SessionID: "a"}, 3},
		{"from", QueryOpts{From: base.Add(2 * time.Minute)}, 2},
		{"to", QueryOpts{To: base.Add(time.Minute)}, 2},
		{"session and limit", QueryOpts{SessionID: "a", Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Recent(ctx, tt.opts)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestJournalStepVisits(t *testing.T) {
	repo := openTestStore(t).JournalRepo()
	ctx := context.Background()

	for _, e := range []Entry{
		{SessionID: "s", Op: "navigate", From: "intro", To: "step1"},
		{SessionID: "s", Op: "previous", From: "step1", To: "intro"},
		{SessionID: "s", Op: "navigate", From: "intro", To: "step1"},
		{SessionID: "s", Op: "navigate", From: "step1", To: "step3", Locked: "3"},
	} {
		if err := repo.Append(ctx, &e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.StepVisits(ctx)
	if err != nil {
		t.Fatalf("step visits: %v", err)
	}
	want := []StepVisit{{Step: "step1", Count: 2}, {Step: "intro", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("visits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestJournalClear(t *testing.T) {
	repo := openTestStore(t).JournalRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Append(ctx, &Entry{SessionID: "s", Op: "reset", From: "step1", To: "intro"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared = %d, want 3", n)
	}

	got, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("entries after clear = %d, want 0", len(got))
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nested", "j.db")
		got, err := DefaultDBPath(p)
		if err != nil {
			t.Fatalf("default path: %v", err)
		}
		if got != p {
			t.Errorf("path = %q, want %q", got, p)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath("")
		if err != nil {
			t.Fatalf("default path: %v", err)
		}
		want := filepath.Join(dir, "caseguide", "journal.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
