package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileUsesWAL.
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

func TestOpenFileUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "fincert.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{tableSessions, tableAttempts} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func seedHistory(t *testing.T, repo HistoryRepo) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	sessions := []SessionRecord{
		{ID: "s1", Label: "all", Total: 3, StartedAt: base},
		{ID: "s2", Label: "random", Total: 2, StartedAt: base.Add(time.Minute)},
	}
	for _, rec := range sessions {
		if err := repo.StartSession(ctx, rec); err != nil {
			t.Fatalf("start session %s: %v", rec.ID, err)
		}
	}

	attempts := []Attempt{
		{SessionID: "s1", QuestionID: "1", Category: "채권", Kind: "ox", Verdict: "correct", Correct: true},
		{SessionID: "s1", QuestionID: "2", Category: "주식", Kind: "multiple-choice", Verdict: "incorrect"},
		{SessionID: "s1", QuestionID: "3", Category: "채권", Kind: "free-form", Verdict: "correct", Correct: true, SelfGraded: true},
		{SessionID: "s2", QuestionID: "2", Category: "주식", Kind: "multiple-choice", Verdict: "incorrect"},
		{SessionID: "s2", QuestionID: "3", Category: "채권", Kind: "free-form", Verdict: "incorrect", SelfGraded: true},
	}
	for i, a := range attempts {
		if err := repo.AppendAttempt(ctx, a); err != nil {
			t.Fatalf("append attempt %d: %v", i, err)
		}
	}

	if err := repo.EndSession(ctx, "s1", 3, 2, base.Add(30*time.Second)); err != nil {
		t.Fatalf("end session: %v", err)
	}
}

func TestRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	seedHistory(t, repo)

	got, err := repo.RecentSessions(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "s2" {
		t.Errorf("newest session = %q, want s2", got[0].ID)
	}
	if got[0].Finished() {
		t.Error("s2 should be unfinished")
	}
	if !got[1].Finished() || got[1].Score != 2 || got[1].Answered != 3 {
		t.Errorf("s1 = %+v, want finished with 2/3", got[1])
	}

	limited, err := repo.RecentSessions(context.Background(), 1)
	if err != nil {
		t.Fatalf("recent sessions (limit): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited len = %d, want 1", len(limited))
	}
}

func TestEndSessionUnknown(t *testing.T) {
	s := openTestStore(t)
	if err := s.HistoryRepo().EndSession(context.Background(), "missing", 0, 0, time.Now()); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestAppendAttemptRequiresSession(t *testing.T) {
	s := openTestStore(t)
	err := s.HistoryRepo().AppendAttempt(context.Background(), Attempt{
		SessionID: "ghost", QuestionID: "1", Category: "채권", Kind: "ox", Verdict: "correct",
	})
	if err == nil {
		t.Error("expected foreign key violation")
	}
}

func TestCategoryAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	seedHistory(t, repo)

	got, err := repo.CategoryAccuracy(context.Background())
	if err != nil {
		t.Fatalf("category accuracy: %v", err)
	}
	want := []CategoryStat{
		{Category: "주식", Attempts: 2, Correct: 0},
		{Category: "채권", Attempts: 3, Correct: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stat[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if acc := got[1].Accuracy(); acc < 0.66 || acc > 0.67 {
		t.Errorf("accuracy = %f, want ~0.667", acc)
	}
}

func TestMostMissed(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	seedHistory(t, repo)

	got, err := repo.MostMissed(context.Background(), 5)
	if err != nil {
		t.Fatalf("most missed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%+v)", len(got), got)
	}
	if got[0].QuestionID != "2" || got[0].Misses != 2 || got[0].Attempts != 2 {
		t.Errorf("top miss = %+v, want question 2 with 2/2 misses", got[0])
	}
	if got[1].QuestionID != "3" || got[1].Misses != 1 {
		t.Errorf("second miss = %+v, want question 3 with 1 miss", got[1])
	}
}

func TestTotalsAndReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	empty, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("empty totals = %+v", empty)
	}

	seedHistory(t, repo)
	got, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if want := (Totals{Sessions: 2, Attempts: 5, Correct: 2}); got != want {
		t.Errorf("totals = %+v, want %+v", got, want)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ = repo.Totals(ctx)
	if got != (Totals{}) {
		t.Errorf("totals after reset = %+v", got)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("FINCERT_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("FINCERT_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dataHome, "fincert", "fincert.db"); got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fincert.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		for _, table := range []string{tableSessions, tableAttempts} {
			var n int
			err := s.DB().QueryRow(
				"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
			if err != nil || n != 1 {
				t.Errorf("open #%d: table %s missing (n=%d, err=%v)", i+1, table, n, err)
			}
		}
		s.Close()
	}
}
