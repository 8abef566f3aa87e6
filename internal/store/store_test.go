package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "itihas-test.db"))
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

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"quiz_results", "llm_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.ResultRepo().Record(ctx, QuizResult{Topic: "Ashoka", Score: 2, Total: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.ResultRepo().History(ctx, "Ashoka", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result after reopen, got %d", len(got))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq <= prev {
			t.Errorf("seq[%d] = %d, not greater than %d", i, seq, prev)
		}
		prev = seq
	}
}

func TestResultRepo_RecordAndHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	results := []QuizResult{
		{SessionID: "s1", Topic: "Ashoka", Score: 1, Total: 3, CompletedAt: at},
		{SessionID: "s2", Topic: "Aryabhata", Score: 3, Total: 3, CompletedAt: at.Add(time.Minute)},
		{SessionID: "s3", Topic: "Ashoka", Score: 2, Total: 3, CompletedAt: at.Add(2 * time.Minute)},
	}
	for _, r := range results {
		if err := repo.Record(ctx, r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	ashoka, err := repo.History(ctx, "Ashoka", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(ashoka) != 2 {
		t.Fatalf("expected 2 Ashoka results, got %d", len(ashoka))
	}
	if ashoka[0].Display() != "1/3" || ashoka[1].Display() != "2/3" {
		t.Errorf("history = %s, %s; want 1/3, 2/3", ashoka[0].Display(), ashoka[1].Display())
	}
	if !ashoka[0].CompletedAt.Equal(at) {
		t.Errorf("completed_at = %v, want %v", ashoka[0].CompletedAt, at)
	}

	all, err := repo.History(ctx, "", 2)
	if err != nil {
		t.Fatalf("history all: %v", err)
	}
	if len(all) != 2 || all[0].Topic != "Aryabhata" || all[1].Display() != "2/3" {
		t.Errorf("limited history = %+v, want the two newest in completion order", all)
	}

	topics, err := repo.Topics(ctx)
	if err != nil {
		t.Fatalf("topics: %v", err)
	}
	if len(topics) != 2 || topics[0] != "Ashoka" || topics[1] != "Aryabhata" {
		t.Errorf("topics = %v, want [Ashoka Aryabhata]", topics)
	}
}

func TestResultRepo_HistoryLimitKeepsNewest(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		r := QuizResult{SessionID: "s", Topic: "Ashoka", Score: 3, Total: i + 3, CompletedAt: at.Add(time.Duration(i) * time.Minute)}
		if err := repo.Record(ctx, r); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got, err := repo.History(ctx, "Ashoka", 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("expected 20 results, got %d", len(got))
	}
	if got[0].Display() != "3/8" || got[19].Display() != "3/27" {
		t.Errorf("history spans %s..%s, want 3/8..3/27", got[0].Display(), got[19].Display())
	}
	for i := 1; i < len(got); i++ {
		if got[i].Sequence <= got[i-1].Sequence {
			t.Fatalf("history not in completion order at %d", i)
		}
	}
}

func TestResultRepo_RejectsInvalid(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	if err := repo.Record(ctx, QuizResult{Score: 1, Total: 3}); err == nil {
		t.Error("expected error for empty topic")
	}
	if err := repo.Record(ctx, QuizResult{Topic: "x", Score: 4, Total: 3}); err == nil {
		t.Error("expected error for score above total")
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gpt-4o-mini", Model: "gpt-4o-mini", Purpose: "translate", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true, RequestBody: "[user]\nhello", ResponseBody: `{"translation":"x"}`},
		{Provider: "gpt-4o-mini", Model: "gpt-4o-mini", Purpose: "translate", InputTokens: 20, OutputTokens: 7, LatencyMs: 300, Success: true},
		{Provider: "claude-haiku", Model: "claude-haiku-4-5-20251001", Purpose: "translate-batch", InputTokens: 50, OutputTokens: 30, LatencyMs: 200, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Purpose != "translate-batch" || got[0].Success {
		t.Errorf("expected newest failed event first, got %+v", got[0])
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "translate"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].InputTokens != 20 {
		t.Errorf("limited = %+v", limited)
	}

	e, err := repo.GetLLMEvent(ctx, got[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "[user]\nhello" || e.ResponseBody != `{"translation":"x"}` {
		t.Errorf("get = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "translate", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Model: "gpt-4o-mini", Purpose: "translate", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Model: "gemini-2.0-flash", Purpose: "translate-batch", InputTokens: 1, OutputTokens: 1, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	tr := byPurpose[0]
	if tr.Purpose != "translate" || tr.Calls != 2 || tr.InputTokens != 30 || tr.OutputTokens != 10 || tr.AvgLatencyMs != 200 {
		t.Errorf("translate usage = %+v", tr)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.0-flash" || byModel[1].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("ITIHAS_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
