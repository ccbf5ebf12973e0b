package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store is a SQLite-backed resize job queue keyed by job id.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an initialised database (see db.InitDB).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Enqueue adds jobs to the queue. A job whose id is already pending or
// processing is left alone; a completed or failed job with the same id is
// reset to pending so a later trigger retries it. It returns the number of
// jobs that became pending.
func (s *Store) Enqueue(ctx context.Context, jobs ...Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO resize_jobs (id, path, status, attempts, created_at, updated_at)
		VALUES (?, ?, 'pending', 0, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			status = 'pending',
			error_message = NULL,
			updated_at = excluded.updated_at
		WHERE resize_jobs.status IN ('completed', 'failed')`)
	if err != nil {
		return 0, fmt.Errorf("prepare enqueue: %w", err)
	}
	defer stmt.Close()

	added := 0
	now := s.now().UnixNano()
	for _, j := range jobs {
		if j.ID == "" || j.Path == "" {
			return 0, fmt.Errorf("enqueue: job id and path are required")
		}
		res, err := stmt.ExecContext(ctx, j.ID, j.Path, now, now)
		if err != nil {
			return 0, fmt.Errorf("enqueue %s: %w", j.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit enqueue: %w", err)
	}
	return added, nil
}

// Next claims the oldest pending job and marks it processing.
func (s *Store) Next(ctx context.Context) (Job, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE resize_jobs
		SET status = 'processing', attempts = attempts + 1, updated_at = ?
		WHERE id = (
			SELECT id FROM resize_jobs
			WHERE status = 'pending'
			ORDER BY created_at, rowid
			LIMIT 1
		)
		RETURNING id, path, status, error_message, attempts, created_at, updated_at`,
		s.now().UnixNano())

	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNoJob
	}
	if err != nil {
		return Job{}, fmt.Errorf("claim next job: %w", err)
	}
	return j, nil
}

// Complete marks a job completed.
func (s *Store) Complete(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusCompleted, "")
}

// Fail marks a job failed with msg.
func (s *Store) Fail(ctx context.Context, id, msg string) error {
	return s.setStatus(ctx, id, StatusFailed, msg)
}

func (s *Store) setStatus(ctx context.Context, id string, status Status, msg string) error {
	var errMsg sql.NullString
	if msg != "" {
		errMsg = sql.NullString{String: msg, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE resize_jobs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		string(status), errMsg, s.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns a job by id.
func (s *Store) Get(ctx context.Context, id string) (Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, status, error_message, attempts, created_at, updated_at
		FROM resize_jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return j, err
}

// Requeue moves jobs left in processing (for example after a crash) back to
// pending. It returns the number of jobs moved.
func (s *Store) Requeue(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE resize_jobs SET status = 'pending', updated_at = ? WHERE status = 'processing'`,
		s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("requeue processing jobs: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns job counts per status.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM resize_jobs GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Stats{}, err
		}
		switch Status(status) {
		case StatusPending:
			st.Pending = n
		case StatusProcessing:
			st.Processing = n
		case StatusCompleted:
			st.Completed = n
		case StatusFailed:
			st.Failed = n
		}
	}
	return st, rows.Err()
}

// PurgeFinished deletes completed and failed jobs last updated before cutoff.
func (s *Store) PurgeFinished(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM resize_jobs WHERE status IN ('completed', 'failed') AND updated_at < ?`,
		before.UTC().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purge finished jobs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (Job, error) {
	var (
		j                Job
		status           string
		errMsg           sql.NullString
		created, updated int64
	)
	if err := row.Scan(&j.ID, &j.Path, &status, &errMsg, &j.Attempts, &created, &updated); err != nil {
		return Job{}, err
	}
	j.Status = Status(status)
	j.ErrorMessage = errMsg.String
	j.CreatedAt = time.Unix(0, created).UTC()
	j.UpdatedAt = time.Unix(0, updated).UTC()
	return j, nil
}
