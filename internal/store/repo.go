package store

import (
	"context"
	"time"
)

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	SessionID string    // only this session when set
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// Entry is one recorded navigation attempt.
type Entry struct {
	ID        int64
	SessionID string
	Op        string
	From      string
	To        string
	// Locked names the main step that blocked the attempt. Empty when the
	// transition went through.
	Locked    string
	Percent   int
	Timestamp time.Time
}

// Rejected reports whether the attempt was refused by the lock check.
func (e Entry) Rejected() bool { return e.Locked != "" }

// StepVisit counts successful arrivals at a step.
type StepVisit struct {
	Step  string
	Count int
}

// JournalRepo provides append and read access to the transition journal.
type JournalRepo interface {
	// Append records an entry. ID and a zero Timestamp are filled in.
	Append(ctx context.Context, e *Entry) error

	// Recent returns entries newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Entry, error)

	// StepVisits counts successful arrivals per step, most visited first.
	StepVisits(ctx context.Context) ([]StepVisit, error)

	// Clear deletes every entry and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
