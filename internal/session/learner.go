package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/quizgen"
)

// Result is a completed quiz, handed to a ResultRecorder.
type Result struct {
	SessionID string
	Topic     string
	Score     int
	Total     int
	At        time.Time
}

// ResultRecorder persists completed quizzes.
type ResultRecorder interface {
	RecordResult(ctx context.Context, r Result) error
}

// RecorderFunc adapts a function to ResultRecorder.
type RecorderFunc func(ctx context.Context, r Result) error

func (f RecorderFunc) RecordResult(ctx context.Context, r Result) error { return f(ctx, r) }

// Learner holds one learner's quiz session and score history. All methods
// are serialized, so a Learner may be shared by concurrent callers.
type Learner struct {
	mu       sync.Mutex
	sess     QuizSession
	history  *ScoreHistory
	recorder ResultRecorder
	log      *logger.Logger
	now      func() time.Time
}

// NewLearner creates a Learner in the Idle phase. rec may be nil.
func NewLearner(rec ResultRecorder, log *logger.Logger) *Learner {
	if log == nil {
		log = logger.Nop()
	}
	return &Learner{
		history:  NewScoreHistory(),
		recorder: rec,
		log:      log,
		now:      time.Now,
	}
}

// Preload seeds the history with results from earlier runs. It does not
// notify the recorder.
func (l *Learner) Preload(topic string, results ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range results {
		l.history.Append(topic, r)
	}
}

// Start binds items to a new session. Only allowed from Idle.
func (l *Learner) Start(topic string, items []quizgen.Item) (QuizSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sess.Phase != PhaseIdle {
		return QuizSession{}, &ErrInvalidTransition{From: l.sess.Phase, Action: "start a quiz"}
	}
	if len(items) == 0 {
		return QuizSession{}, ErrNoItems
	}

	l.sess = QuizSession{
		ID:    uuid.NewString(),
		Topic: topic,
		Items: slices.Clone(items),
		Phase: PhaseInProgress,
	}
	l.log.Debug("quiz started", "session", l.sess.ID, "topic", topic, "items", len(items))
	return l.snapshot(), nil
}

// Current returns the item awaiting an answer.
func (l *Learner) Current() (quizgen.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sess.Current()
}

// Submit scores answer against the current item's displayed correct
// answer and advances. An empty answer returns ErrNoSelection and an answer
// outside the question's options returns *ErrUnknownAnswer; both leave the
// session unchanged. The answer that finishes the quiz moves the
// session to Completed and records its result exactly once.
func (l *Learner) Submit(ctx context.Context, answer string) (Feedback, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.sess.Current()
	if !ok {
		return Feedback{}, &ErrInvalidTransition{From: l.sess.Phase, Action: "submit an answer"}
	}
	if answer == "" {
		return Feedback{}, ErrNoSelection
	}
	view := item.View()
	if !slices.Contains(view.Options, answer) {
		return Feedback{}, &ErrUnknownAnswer{Answer: answer}
	}

	correct := view.CorrectAnswer
	fb := Feedback{Selected: answer, CorrectAnswer: correct}
	if answer == correct {
		l.sess.Score++
		fb.Correct = true
	}
	l.sess.CurrentIndex++

	if l.sess.CurrentIndex == len(l.sess.Items) {
		l.complete(ctx)
		fb.Completed = true
		fb.Result = l.sess.Result()
	}
	return fb, nil
}

// complete transitions to Completed. Callers hold mu.
func (l *Learner) complete(ctx context.Context) {
	l.sess.Phase = PhaseCompleted
	l.history.Append(l.sess.Topic, l.sess.Result())

	if l.recorder == nil {
		return
	}
	r := Result{
		SessionID: l.sess.ID,
		Topic:     l.sess.Topic,
		Score:     l.sess.Score,
		Total:     l.sess.Total(),
		At:        l.now(),
	}
	// The in-memory history is authoritative for this process.
	if err := l.recorder.RecordResult(ctx, r); err != nil {
		l.log.Warn("failed to persist quiz result", "session", r.SessionID, "topic", r.Topic, "err", err)
	}
}

// Reset clears the completed session and returns to Idle. The score
// history is kept. Reset in Idle is a no-op; an unfinished quiz cannot be
// reset.
func (l *Learner) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.sess.Phase {
	case PhaseIdle:
		return nil
	case PhaseInProgress:
		return &ErrInvalidTransition{From: l.sess.Phase, Action: "reset"}
	}
	l.sess = QuizSession{}
	return nil
}

// Abandon discards an unfinished quiz and returns to Idle without
// recording a result. The score history is kept.
func (l *Learner) Abandon() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sess.Phase != PhaseInProgress {
		return &ErrInvalidTransition{From: l.sess.Phase, Action: "abandon"}
	}
	l.log.Debug("quiz abandoned", "session", l.sess.ID, "topic", l.sess.Topic, "answered", l.sess.CurrentIndex)
	l.sess = QuizSession{}
	return nil
}

// Phase returns the current phase.
func (l *Learner) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sess.Phase
}

// Session returns a snapshot of the current session.
func (l *Learner) Session() QuizSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// History returns a snapshot of the score history.
func (l *Learner) History() *ScoreHistory {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history.Clone()
}

func (l *Learner) snapshot() QuizSession {
	s := l.sess
	s.Items = slices.Clone(s.Items)
	return s
}
