// Package screentest provides an in-memory engine and helpers for
// exercising screens without a network.
package screentest

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/pipeline"
	"github.com/abhisek/itihas/internal/quizgen"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/story"
)

// Engine is a scripted screen.Engine. Zero-value fields produce empty
// successful results.
type Engine struct {
	mu sync.Mutex

	CandidatesResult []string
	CandidatesErr    error

	SummaryResult *pipeline.SummaryResult
	SummaryErr    error

	QuizItems []quizgen.Item
	QuizErr   error

	StoryResult *pipeline.StoryResult
	StoryErr    error

	SlokaResult *pipeline.SlokaResult
	SlokaErr    error

	// Calls records operation names with their language argument.
	Calls []string
}

var _ screen.Engine = (*Engine)(nil)

func (e *Engine) record(op string) {
	e.mu.Lock()
	e.Calls = append(e.Calls, op)
	e.mu.Unlock()
}

func (e *Engine) Candidates(_ context.Context, topic string) ([]string, error) {
	e.record("candidates:" + topic)
	return e.CandidatesResult, e.CandidatesErr
}

func (e *Engine) Summarize(_ context.Context, title, language string) (*pipeline.SummaryResult, error) {
	e.record("summarize:" + language)
	if e.SummaryErr != nil {
		return nil, e.SummaryErr
	}
	if e.SummaryResult != nil {
		return e.SummaryResult, nil
	}
	return &pipeline.SummaryResult{Title: title, Requested: language, Effective: language}, nil
}

func (e *Engine) StartQuiz(_ context.Context, l *session.Learner, title, language string) (*pipeline.QuizResult, error) {
	e.record("quiz:" + language)
	if e.QuizErr != nil {
		return nil, e.QuizErr
	}
	if _, err := l.Start(title, e.QuizItems); err != nil {
		return nil, err
	}
	return &pipeline.QuizResult{Title: title, Requested: language, Effective: language, Items: e.QuizItems}, nil
}

func (e *Engine) Story(_ context.Context, subject, epithet string, band story.AgeBand, language string) (*pipeline.StoryResult, error) {
	e.record("story:" + language)
	if e.StoryErr != nil {
		return nil, e.StoryErr
	}
	if e.StoryResult != nil {
		return e.StoryResult, nil
	}
	return &pipeline.StoryResult{
		Story:     story.Story{Subject: subject, Epithet: epithet, Band: band},
		Requested: language,
		Effective: language,
	}, nil
}

func (e *Engine) Sloka(_ context.Context, verse, language string) (*pipeline.SlokaResult, error) {
	e.record("sloka:" + language)
	if e.SlokaErr != nil {
		return nil, e.SlokaErr
	}
	if e.SlokaResult != nil {
		return e.SlokaResult, nil
	}
	return &pipeline.SlokaResult{Verse: verse, Language: language, Meaning: verse}, nil
}

// Services returns services wired to eng with an English preference and
// a fresh learner.
func Services(eng screen.Engine) *screen.Services {
	return &screen.Services{
		Engine:  eng,
		Prefs:   screen.NewPrefs(lang.English),
		Learner: session.NewLearner(nil, logger.Nop()),
		Log:     logger.Nop(),
	}
}

// Items builds n quiz items whose correct answer is always "right".
func Items(n int) []quizgen.Item {
	items := make([]quizgen.Item, n)
	for i := range items {
		items[i] = quizgen.Item{
			ID:            string(rune('a' + i)),
			Question:      "Which of the following statements about 'Ashoka' is correct?",
			Options:       []string{"wrong one", "right", "wrong two", "wrong three"},
			CorrectAnswer: "right",
		}
	}
	return items
}

// Key returns a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a non-printable key press such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type returns one key press per rune of s.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, Key(r))
	}
	return msgs
}

// Feed sends msgs to s in order and returns the resulting screen and the
// command returned by the last message. Commands from earlier messages
// are discarded.
func Feed(s screen.Screen, msgs ...tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, m := range msgs {
		s, cmd = s.Update(m)
	}
	return s, cmd
}
