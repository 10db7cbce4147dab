package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// SessionRecord is one quiz session in the history.
type SessionRecord struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Total     int       `json:"total"`
	Answered  int       `json:"answered"`
	Score     int       `json:"score"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitzero"` // zero while the session is unfinished
}

// Finished reports whether the session ran to completion.
func (r SessionRecord) Finished() bool {
	return !r.EndedAt.IsZero()
}

// Attempt is one committed answer.
type Attempt struct {
	SessionID  string    `json:"session_id"`
	QuestionID string    `json:"question_id"`
	Category   string    `json:"category"`
	Kind       string    `json:"kind"`
	Answer     string    `json:"answer"`
	Verdict    string    `json:"verdict"`
	Correct    bool      `json:"correct"`
	SelfGraded bool      `json:"self_graded"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryStat aggregates attempts for one category.
type CategoryStat struct {
	Category string `json:"category"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (c CategoryStat) Accuracy() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempts)
}

// MissStat counts how often a question was answered wrong.
type MissStat struct {
	QuestionID string `json:"question_id"`
	Category   string `json:"category"`
	Attempts   int    `json:"attempts"`
	Misses     int    `json:"misses"`
}

// Totals summarizes the whole history.
type Totals struct {
	Sessions int `json:"sessions"`
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// HistoryRepo records quiz sessions and their attempts.
type HistoryRepo interface {
	// StartSession records a new session.
	StartSession(ctx context.Context, rec SessionRecord) error

	// EndSession stores the final counts of a session.
	EndSession(ctx context.Context, id string, answered, score int, endedAt time.Time) error

	// AppendAttempt records one committed answer.
	AppendAttempt(ctx context.Context, a Attempt) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// CategoryAccuracy returns per-category totals, sorted by category.
	CategoryAccuracy(ctx context.Context) ([]CategoryStat, error)

	// MostMissed returns up to limit questions with at least one miss,
	// most missed first.
	MostMissed(ctx context.Context, limit int) ([]MissStat, error)

	// Totals returns overall counts.
	Totals(ctx context.Context) (Totals, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}

type historyRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *historyRepo) StartSession(ctx context.Context, rec SessionRecord) error {
	query, args := builder().Insert(tableSessions).
		Columns("id", "label", "total", "started_at").
		Values(rec.ID, rec.Label, rec.Total, rec.StartedAt.UnixMilli()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *historyRepo) EndSession(ctx context.Context, id string, answered, score int, endedAt time.Time) error {
	query, args := builder().Update(tableSessions).
		Set("answered", answered).
		Set("score", score).
		Set("ended_at", endedAt.UnixMilli()).
		Where(entsql.EQ("id", id)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("end session %s: not found", id)
	}
	return nil
}

func (r *historyRepo) AppendAttempt(ctx context.Context, a Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	query, args := builder().Insert(tableAttempts).
		Columns("session_id", "question_id", "category", "kind", "answer", "verdict", "correct", "self_graded", "created_at").
		Values(a.SessionID, a.QuestionID, a.Category, a.Kind, a.Answer, a.Verdict, a.Correct, a.SelfGraded, a.CreatedAt.UnixMilli()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := builder().Select("id", "label", "total", "answered", "score", "started_at", "ended_at").
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc("started_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec     SessionRecord
			started int64
			ended   sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Total, &rec.Answered, &rec.Score, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.UnixMilli(started)
		if ended.Valid {
			rec.EndedAt = time.UnixMilli(ended.Int64)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) CategoryAccuracy(ctx context.Context) ([]CategoryStat, error) {
	query, args := builder().Select(
		"category",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("correct"), "correct_count"),
	).
		From(entsql.Table(tableAttempts)).
		GroupBy("category").
		OrderBy("category").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query category accuracy: %w", err)
	}
	defer rows.Close()

	var out []CategoryStat
	for rows.Next() {
		var c CategoryStat
		if err := rows.Scan(&c.Category, &c.Attempts, &c.Correct); err != nil {
			return nil, fmt.Errorf("scan category accuracy: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *historyRepo) MostMissed(ctx context.Context, limit int) ([]MissStat, error) {
	sel := builder().Select(
		"question_id",
		entsql.As("MAX(category)", "category"),
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As("SUM(1 - correct)", "misses"),
	).
		From(entsql.Table(tableAttempts)).
		GroupBy("question_id").
		OrderBy(entsql.Desc("misses"), "question_id")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}
	defer rows.Close()

	var out []MissStat
	for rows.Next() {
		var m MissStat
		if err := rows.Scan(&m.QuestionID, &m.Category, &m.Attempts, &m.Misses); err != nil {
			return nil, fmt.Errorf("scan most missed: %w", err)
		}
		if m.Misses > 0 {
			out = append(out, m)
		}
	}
	return out, rows.Err()
}

func (r *historyRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals

	query, args := builder().Select(entsql.Count("*")).From(entsql.Table(tableSessions)).Query()
	if err := r.scanOne(ctx, query, args, &t.Sessions); err != nil {
		return t, fmt.Errorf("count sessions: %w", err)
	}

	query, args = builder().Select(
		entsql.Count("*"),
		"COALESCE(SUM(correct), 0)",
	).From(entsql.Table(tableAttempts)).Query()
	if err := r.scanOne(ctx, query, args, &t.Attempts, &t.Correct); err != nil {
		return t, fmt.Errorf("count attempts: %w", err)
	}
	return t, nil
}

func (r *historyRepo) Reset(ctx context.Context) error {
	for _, table := range []string{tableAttempts, tableSessions} {
		query, args := builder().Delete(table).Query()
		if err := r.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (r *historyRepo) scanOne(ctx context.Context, query string, args []any, dest ...any) error {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	return rows.Scan(dest...)
}
