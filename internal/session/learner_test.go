package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/itihas/internal/quizgen"
)

func testItems() []quizgen.Item {
	return []quizgen.Item{
		{ID: "1", Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{ID: "2", Question: "q2", Options: []string{"e", "f", "g", "h"}, CorrectAnswer: "f"},
		{ID: "3", Question: "q3", Options: []string{"i", "j", "k", "l"}, CorrectAnswer: "k"},
	}
}

type captureRecorder struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (c *captureRecorder) RecordResult(_ context.Context, r Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
	return c.err
}

func TestLearner_ScenarioD(t *testing.T) {
	rec := &captureRecorder{}
	l := NewLearner(rec, nil)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx := context.Background()
	for i, answer := range []string{"a", "f", "l"} {
		fb, err := l.Submit(ctx, answer)
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if wantCorrect := i < 2; fb.Correct != wantCorrect {
			t.Errorf("answer %d: Correct = %v, want %v", i, fb.Correct, wantCorrect)
		}
		if fb.Completed != (i == 2) {
			t.Errorf("answer %d: Completed = %v", i, fb.Completed)
		}
	}

	s := l.Session()
	if s.Score != 2 || s.Phase != PhaseCompleted {
		t.Fatalf("session = score %d phase %s, want 2 completed", s.Score, s.Phase)
	}
	got := l.History().Results("Ashoka")
	if len(got) != 1 || got[0] != "2/3" {
		t.Fatalf("history = %v, want [2/3]", got)
	}

	// Observing the completed state again must not append.
	_ = l.Session()
	_ = l.Phase()
	if _, ok := l.Current(); ok {
		t.Error("Current() should be empty after completion")
	}
	if _, err := l.Submit(ctx, "a"); err == nil {
		t.Error("Submit after completion should fail")
	}
	if n := len(l.History().Results("Ashoka")); n != 1 {
		t.Fatalf("history has %d entries after re-observation, want 1", n)
	}

	if len(rec.results) != 1 {
		t.Fatalf("recorder called %d times, want 1", len(rec.results))
	}
	r := rec.results[0]
	if r.Topic != "Ashoka" || r.Score != 2 || r.Total != 3 || !r.At.Equal(fixed) || r.SessionID != s.ID {
		t.Errorf("recorded %+v", r)
	}
}

func TestLearner_NoSelectionLeavesStateUnchanged(t *testing.T) {
	l := NewLearner(nil, nil)
	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatal(err)
	}

	before := l.Session()
	_, err := l.Submit(context.Background(), "")
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	after := l.Session()
	if after.CurrentIndex != before.CurrentIndex || after.Score != before.Score || after.Phase != PhaseInProgress {
		t.Errorf("state changed: before %+v after %+v", before, after)
	}
}

func TestLearner_SubmitRejectsAnswerOutsideOptions(t *testing.T) {
	rec := &captureRecorder{}
	l := NewLearner(rec, nil)
	if _, err := l.Start("Ashoka", testItems()[:1]); err != nil {
		t.Fatal(err)
	}

	before := l.Session()
	for _, answer := range []string{"f", "A", "a ", "Ashoka"} {
		_, err := l.Submit(context.Background(), answer)
		var unknown *ErrUnknownAnswer
		if !errors.As(err, &unknown) || unknown.Answer != answer {
			t.Fatalf("Submit(%q) err = %v, want ErrUnknownAnswer", answer, err)
		}
	}
	after := l.Session()
	if after.CurrentIndex != before.CurrentIndex || after.Score != before.Score || after.Phase != PhaseInProgress {
		t.Errorf("state changed: before %+v after %+v", before, after)
	}
	if len(rec.results) != 0 || len(l.History().Results("Ashoka")) != 0 {
		t.Error("rejected answers must not complete the quiz")
	}

	// A valid option still finishes the single-question quiz.
	fb, err := l.Submit(context.Background(), "a")
	if err != nil || !fb.Completed || fb.Result != "1/1" {
		t.Fatalf("Submit(a) = %+v, %v", fb, err)
	}
}

func TestLearner_SubmitAdvancesByOne(t *testing.T) {
	l := NewLearner(nil, nil)
	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i, tc := range []struct {
		answer    string
		wantScore int
	}{
		{"b", 0}, // wrong
		{"f", 1}, // right
	} {
		if _, err := l.Submit(ctx, tc.answer); err != nil {
			t.Fatal(err)
		}
		s := l.Session()
		if s.CurrentIndex != i+1 {
			t.Errorf("CurrentIndex = %d, want %d", s.CurrentIndex, i+1)
		}
		if s.Score != tc.wantScore {
			t.Errorf("Score = %d, want %d", s.Score, tc.wantScore)
		}
	}
}

func TestLearner_ComparesAgainstLocalizedAnswer(t *testing.T) {
	items := []quizgen.Item{{
		ID: "1", Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a",
		Localized: &quizgen.Localized{Language: "hi", Question: "प्र", Options: []string{"क", "ख"}, CorrectAnswer: "क"},
	}}
	l := NewLearner(nil, nil)
	if _, err := l.Start("Ashoka", items); err != nil {
		t.Fatal(err)
	}
	fb, err := l.Submit(context.Background(), "क")
	if err != nil {
		t.Fatal(err)
	}
	if !fb.Correct || fb.CorrectAnswer != "क" {
		t.Errorf("feedback = %+v", fb)
	}
}

func TestLearner_Transitions(t *testing.T) {
	ctx := context.Background()
	l := NewLearner(nil, nil)

	if err := l.Reset(); err != nil {
		t.Errorf("Reset in Idle should be a no-op, got %v", err)
	}
	var inv *ErrInvalidTransition
	if _, err := l.Submit(ctx, "a"); !errors.As(err, &inv) || inv.From != PhaseIdle {
		t.Errorf("Submit in Idle: %v", err)
	}
	if _, err := l.Start("x", nil); !errors.Is(err, ErrNoItems) {
		t.Errorf("Start with no items: %v", err)
	}

	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Start("Akbar", testItems()); !errors.As(err, &inv) {
		t.Errorf("Start while in progress: %v", err)
	}
	if err := l.Reset(); !errors.As(err, &inv) || inv.From != PhaseInProgress {
		t.Errorf("Reset while in progress: %v", err)
	}

	for _, a := range []string{"a", "e", "i"} {
		if _, err := l.Submit(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.Start("Akbar", testItems()); !errors.As(err, &inv) || inv.From != PhaseCompleted {
		t.Errorf("Start while completed: %v", err)
	}
	if err := l.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	s := l.Session()
	if s.Phase != PhaseIdle || s.Items != nil || s.Score != 0 || s.CurrentIndex != 0 {
		t.Errorf("session not cleared: %+v", s)
	}
	if got := l.History().Results("Ashoka"); len(got) != 1 || got[0] != "1/3" {
		t.Errorf("history lost on reset: %v", got)
	}

	// A second attempt on the same topic appends.
	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatal(err)
	}
	for _, a := range []string{"a", "f", "k"} {
		if _, err := l.Submit(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.History().Results("Ashoka"); len(got) != 2 || got[1] != "3/3" {
		t.Errorf("history = %v", got)
	}
}

func TestLearner_RecorderFailureIsNotFatal(t *testing.T) {
	rec := &captureRecorder{err: errors.New("disk full")}
	l := NewLearner(rec, nil)
	items := testItems()[:1]
	if _, err := l.Start("Ashoka", items); err != nil {
		t.Fatal(err)
	}
	fb, err := l.Submit(context.Background(), "a")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.Completed || fb.Result != "1/1" {
		t.Errorf("feedback = %+v", fb)
	}
	if got := l.History().Results("Ashoka"); len(got) != 1 {
		t.Errorf("history = %v", got)
	}
}

func TestLearner_RecorderFunc(t *testing.T) {
	var got Result
	l := NewLearner(RecorderFunc(func(_ context.Context, r Result) error {
		got = r
		return nil
	}), nil)
	if _, err := l.Start("Akbar", testItems()[:1]); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Submit(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}
	if got.Topic != "Akbar" || got.Score != 0 || got.Total != 1 {
		t.Errorf("recorded %+v", got)
	}
}

func TestLearner_SnapshotsAreCopies(t *testing.T) {
	l := NewLearner(nil, nil)
	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatal(err)
	}
	s := l.Session()
	s.Items[0] = quizgen.Item{}

	cur, ok := l.Current()
	if !ok || cur.ID != "1" {
		t.Errorf("session mutated through snapshot: %+v", cur)
	}

	l.Preload("Akbar", "1/3")
	h := l.History()
	h.Append("Akbar", "3/3")
	if got := l.History().Results("Akbar"); len(got) != 1 {
		t.Errorf("history mutated through snapshot: %v", got)
	}
}

func TestLearner_ConcurrentSubmits(t *testing.T) {
	items := make([]quizgen.Item, 50)
	for i := range items {
		items[i] = quizgen.Item{ID: "x", Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"}
	}
	rec := &captureRecorder{}
	l := NewLearner(rec, nil)
	if _, err := l.Start("Ashoka", items); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 80 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Submit(context.Background(), "a")
		}()
	}
	wg.Wait()

	s := l.Session()
	if s.Score != 50 || s.Phase != PhaseCompleted {
		t.Errorf("score %d phase %s, want 50 completed", s.Score, s.Phase)
	}
	if len(rec.results) != 1 {
		t.Errorf("recorded %d results, want 1", len(rec.results))
	}
}

func TestLearner_Abandon(t *testing.T) {
	rec := &captureRecorder{}
	l := NewLearner(rec, nil)

	var inv *ErrInvalidTransition
	if err := l.Abandon(); !errors.As(err, &inv) {
		t.Errorf("Abandon in Idle: %v", err)
	}

	if _, err := l.Start("Ashoka", testItems()); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Submit(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if err := l.Abandon(); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if l.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", l.Phase())
	}
	if l.History().Len() != 0 || len(rec.results) != 0 {
		t.Error("abandoned quiz must not be recorded")
	}
	if _, err := l.Start("Akbar", testItems()); err != nil {
		t.Errorf("Start after Abandon: %v", err)
	}
}
