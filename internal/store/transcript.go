package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/evaluate"
	"github.com/mpandit/prepterm/internal/session"
)

// ErrNotFound is returned when a session or report does not exist.
var ErrNotFound = errors.New("not found")

// TranscriptRepo persists sessions and their turns. It satisfies
// session.TranscriptSink, so the engine can stream turns into it as
// they complete.
type TranscriptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ session.TranscriptSink = (*TranscriptRepo)(nil)

// SessionSummary is one row of the session history listing.
type SessionSummary struct {
	ID           string
	Role         string
	Company      string
	Seniority    string
	StartedAt    time.Time
	FinishedAt   time.Time // zero if the session never finished
	Turns        int
	AverageScore float64
}

// TurnRow is one persisted turn, denormalized with the question it
// answered.
type TurnRow struct {
	Seq          int64
	SessionID    string
	Turn         int
	QuestionID   string
	QuestionText string
	QuestionType string
	Tier         string
	Answer       string
	Score        float64
	Confidence   string
	STAR         string
	Feedback     string
	Elapsed      time.Duration
	Skipped      bool
	Negotiation  bool
	CreatedAt    time.Time
}

// ReportRow is a stored final report: the headline numbers plus the
// rendered text body.
type ReportRow struct {
	SessionID    string
	CreatedAt    time.Time
	AverageScore float64
	Confidence   string
	STARCoverage float64
	Body         string
}

// BeginSession records the session row. Call it once, after the engine
// binds the job; turns reference it by foreign key.
func (r *TranscriptRepo) BeginSession(ctx context.Context, s *session.SessionState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, role, company, seniority, started_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Job.Role, s.Job.Company, string(s.Job.Seniority), s.StartTime.UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FinishSession stamps the session's end time.
func (r *TranscriptRepo) FinishSession(ctx context.Context, sessionID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET finished_at = ? WHERE id = ?`, at.UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// AppendTurn persists one completed turn. Turns are append-only; a
// (session, turn) pair is written exactly once.
func (r *TranscriptRepo) AppendTurn(ctx context.Context, sessionID string, turn int, q bank.Question, rec evaluate.AnswerRecord) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO turns (
			seq, session_id, turn, question_id, question_text, question_type,
			tier, answer, score, confidence, star, feedback,
			elapsed_ms, skipped, negotiation, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, sessionID, turn, q.ID, q.Text, string(q.Type),
		q.Tier.String(), rec.Answer, rec.Score, string(rec.Confidence),
		evaluate.CoverageSummary(rec.STAR), rec.Feedback,
		rec.Elapsed.Milliseconds(), rec.Skipped, rec.Negotiation,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// ListSessions returns the most recent sessions, newest first, with
// per-session turn counts and score means. limit <= 0 means unlimited.
func (r *TranscriptRepo) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	query := `
		SELECT s.id, s.role, s.company, s.seniority, s.started_at, s.finished_at,
		       COUNT(t.seq), COALESCE(AVG(t.score), 0)
		FROM sessions s
		LEFT JOIN turns t ON t.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var finished sql.NullTime
		if err := rows.Scan(&s.ID, &s.Role, &s.Company, &s.Seniority,
			&s.StartedAt, &finished, &s.Turns, &s.AverageScore); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if finished.Valid {
			s.FinishedAt = finished.Time
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SessionTurns returns a session's turns in turn order.
func (r *TranscriptRepo) SessionTurns(ctx context.Context, sessionID string) ([]TurnRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT seq, session_id, turn, question_id, question_text, question_type,
		       tier, answer, score, confidence, star, feedback,
		       elapsed_ms, skipped, negotiation, created_at
		FROM turns WHERE session_id = ? ORDER BY turn`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session turns: %w", err)
	}
	defer rows.Close()

	var out []TurnRow
	for rows.Next() {
		var t TurnRow
		var elapsedMs int64
		if err := rows.Scan(&t.Seq, &t.SessionID, &t.Turn, &t.QuestionID,
			&t.QuestionText, &t.QuestionType, &t.Tier, &t.Answer, &t.Score,
			&t.Confidence, &t.STAR, &t.Feedback, &elapsedMs,
			&t.Skipped, &t.Negotiation, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveReport stores the final report for a session, replacing any
// earlier one (a session re-reported keeps only the latest).
func (r *TranscriptRepo) SaveReport(ctx context.Context, row ReportRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (session_id, created_at, average_score, confidence, star_coverage, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			created_at = excluded.created_at,
			average_score = excluded.average_score,
			confidence = excluded.confidence,
			star_coverage = excluded.star_coverage,
			body = excluded.body`,
		row.SessionID, row.CreatedAt.UTC(), row.AverageScore,
		row.Confidence, row.STARCoverage, row.Body)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// SessionReport returns the stored report for a session.
func (r *TranscriptRepo) SessionReport(ctx context.Context, sessionID string) (ReportRow, error) {
	return r.scanReport(r.db.QueryRowContext(ctx, `
		SELECT session_id, created_at, average_score, confidence, star_coverage, body
		FROM reports WHERE session_id = ?`, sessionID))
}

// LatestReport returns the most recently stored report.
func (r *TranscriptRepo) LatestReport(ctx context.Context) (ReportRow, error) {
	return r.scanReport(r.db.QueryRowContext(ctx, `
		SELECT session_id, created_at, average_score, confidence, star_coverage, body
		FROM reports ORDER BY created_at DESC, session_id DESC LIMIT 1`))
}

func (r *TranscriptRepo) scanReport(row *sql.Row) (ReportRow, error) {
	var out ReportRow
	err := row.Scan(&out.SessionID, &out.CreatedAt, &out.AverageScore,
		&out.Confidence, &out.STARCoverage, &out.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return ReportRow{}, ErrNotFound
	}
	if err != nil {
		return ReportRow{}, fmt.Errorf("scan report: %w", err)
	}
	return out, nil
}

// Reset drops all persisted sessions, turns, and reports.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"reports", "turns", "sessions"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	_, err := s.db.ExecContext(ctx, `UPDATE global_sequence SET next_val = 1 WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return nil
}
