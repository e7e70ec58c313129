package app

import (
	"context"
	"log/slog"
	"time"

	nav "github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/store"
)

const journalTimeout = 2 * time.Second

// journalObserver records every navigator outcome in the transition journal.
// Write failures are logged and never reach the user.
type journalObserver struct {
	repo      store.JournalRepo
	sessionID string
	logger    *slog.Logger
}

var _ nav.Observer = (*journalObserver)(nil)

func (j *journalObserver) Observe(e nav.Event) {
	entry := entryFor(j.sessionID, e)

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := j.repo.Append(ctx, entry); err != nil {
		j.logger.Warn("Journal write failed.", "op", e.Op, "err", err)
	}
}

func entryFor(sessionID string, e nav.Event) *store.Entry {
	entry := &store.Entry{
		SessionID: sessionID,
		Op:        string(e.Op),
		From:      e.From.String(),
		To:        e.To.String(),
		Percent:   e.Projection.Percent,
	}
	if e.Rejected {
		entry.Locked = e.Locked.String()
	}
	return entry
}
