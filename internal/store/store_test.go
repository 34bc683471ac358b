package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/evaluate"
	"github.com/mpandit/prepterm/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRepo(t *testing.T) *TranscriptRepo {
	t.Helper()
	repo, err := openTestStore(t).Transcripts()
	if err != nil {
		t.Fatalf("transcripts: %v", err)
	}
	return repo
}

func testSessionState(id string) *session.SessionState {
	return &session.SessionState{
		ID:        id,
		Job:       session.BindJob("Backend Developer", "FinTechX", "senior python sql"),
		StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func testQuestion(id string) bank.Question {
	return bank.Question{
		ID:    id,
		Text:  "Describe a production incident you handled.",
		Type:  bank.TypeBehavioral,
		Tier:  bank.TierMedium,
		Topic: "incidents",
	}
}

func testRecord(id string, score float64) evaluate.AnswerRecord {
	return evaluate.AnswerRecord{
		QuestionID: id,
		Answer:     "an answer",
		Score:      score,
		Confidence: evaluate.ConfidenceMedium,
		Feedback:   "feedback",
		Elapsed:    90 * time.Second,
	}
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

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"sessions", "turns", "reports"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestAppendAndReadTurns(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	state := testSessionState("sess-1")
	if err := repo.BeginSession(ctx, state); err != nil {
		t.Fatalf("begin session: %v", err)
	}

	for i, score := range []float64{4.2, 2.5, 3.8} {
		qid := []string{"q-a", "q-b", "q-c"}[i]
		err := repo.AppendTurn(ctx, state.ID, i+1, testQuestion(qid), testRecord(qid, score))
		if err != nil {
			t.Fatalf("append turn %d: %v", i+1, err)
		}
	}

	turns, err := repo.SessionTurns(ctx, state.ID)
	if err != nil {
		t.Fatalf("session turns: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(turns))
	}
	for i, turn := range turns {
		if turn.Turn != i+1 {
			t.Errorf("turn %d out of order: %d", i, turn.Turn)
		}
		if i > 0 && turns[i].Seq <= turns[i-1].Seq {
			t.Errorf("sequence not increasing: %d then %d", turns[i-1].Seq, turns[i].Seq)
		}
	}
	if turns[0].Score != 4.2 || turns[0].Elapsed != 90*time.Second {
		t.Errorf("turn 0 round-trip mismatch: %+v", turns[0])
	}
}

func TestListSessions(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := testSessionState("sess-1")
	second := testSessionState("sess-2")
	second.StartTime = first.StartTime.Add(time.Hour)

	for _, state := range []*session.SessionState{first, second} {
		if err := repo.BeginSession(ctx, state); err != nil {
			t.Fatalf("begin %s: %v", state.ID, err)
		}
	}
	if err := repo.AppendTurn(ctx, first.ID, 1, testQuestion("q-a"), testRecord("q-a", 4.0)); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendTurn(ctx, first.ID, 2, testQuestion("q-b"), testRecord("q-b", 2.0)); err != nil {
		t.Fatal(err)
	}
	if err := repo.FinishSession(ctx, first.ID, first.StartTime.Add(20*time.Minute)); err != nil {
		t.Fatal(err)
	}

	sessions, err := repo.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	// Newest first.
	if sessions[0].ID != "sess-2" {
		t.Errorf("order: got %q first, want sess-2", sessions[0].ID)
	}
	withTurns := sessions[1]
	if withTurns.Turns != 2 {
		t.Errorf("turn count = %d, want 2", withTurns.Turns)
	}
	if withTurns.AverageScore != 3.0 {
		t.Errorf("average = %v, want 3.0", withTurns.AverageScore)
	}
	if withTurns.FinishedAt.IsZero() {
		t.Error("finished session has zero FinishedAt")
	}
	if !sessions[0].FinishedAt.IsZero() {
		t.Error("unfinished session has non-zero FinishedAt")
	}
}

func TestListSessionsLimit(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"s1", "s2", "s3"} {
		state := testSessionState(id)
		state.StartTime = base.Add(time.Duration(i) * time.Hour)
		if err := repo.BeginSession(ctx, state); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := repo.ListSessions(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
}

func TestSaveAndFetchReport(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.LatestReport(ctx); err != ErrNotFound {
		t.Fatalf("latest on empty store: err = %v, want ErrNotFound", err)
	}

	state := testSessionState("sess-1")
	if err := repo.BeginSession(ctx, state); err != nil {
		t.Fatal(err)
	}

	row := ReportRow{
		SessionID:    state.ID,
		CreatedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		AverageScore: 3.7,
		Confidence:   "medium",
		STARCoverage: 0.62,
		Body:         "MOCK INTERVIEW REPORT\n...",
	}
	if err := repo.SaveReport(ctx, row); err != nil {
		t.Fatalf("save report: %v", err)
	}

	got, err := repo.SessionReport(ctx, state.ID)
	if err != nil {
		t.Fatalf("session report: %v", err)
	}
	if got.AverageScore != 3.7 || got.Body != row.Body {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	// Re-saving replaces the stored report.
	row.AverageScore = 4.1
	if err := repo.SaveReport(ctx, row); err != nil {
		t.Fatal(err)
	}
	got, err = repo.LatestReport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.AverageScore != 4.1 {
		t.Errorf("average after re-save = %v, want 4.1", got.AverageScore)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.Transcripts()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	state := testSessionState("sess-1")
	if err := repo.BeginSession(ctx, state); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendTurn(ctx, state.ID, 1, testQuestion("q-a"), testRecord("q-a", 4.0)); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	sessions, err := repo.ListSessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions after reset = %d, want 0", len(sessions))
	}
}
