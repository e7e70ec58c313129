package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type journalRepo struct {
	db *sql.DB
}

func (r *journalRepo) Append(ctx context.Context, e *Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO transitions (session_id, op, from_step, to_step, locked_step, percent, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Op, e.From, e.To, e.Locked, e.Percent,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *journalRepo) Recent(ctx context.Context, opts QueryOpts) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if opts.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.SessionID)
	}
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UTC().Format(time.RFC3339Nano))
	}
	if !opts.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, opts.To.UTC().Format(time.RFC3339Nano))
	}

	q := `SELECT id, session_id, op, from_step, to_step, locked_step, percent, created_at FROM transitions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Op, &e.From, &e.To, &e.Locked, &e.Percent, &ts); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp %q: %w", ts, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return out, nil
}

func (r *journalRepo) StepVisits(ctx context.Context) ([]StepVisit, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT to_step, COUNT(*) FROM transitions
WHERE locked_step = ''
GROUP BY to_step
ORDER BY COUNT(*) DESC, to_step`)
	if err != nil {
		return nil, fmt.Errorf("query step visits: %w", err)
	}
	defer rows.Close()

	out := make([]StepVisit, 0)
	for rows.Next() {
		var v StepVisit
		if err := rows.Scan(&v.Step, &v.Count); err != nil {
			return nil, fmt.Errorf("scan step visit: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step visits: %w", err)
	}
	return out, nil
}

func (r *journalRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transitions`)
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	return n, nil
}
