package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/router"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/screens/summary"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/ui/components"
	"github.com/abhisek/itihas/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseError
)

// QuizScreen runs a quiz for one article against the shared learner.
type QuizScreen struct {
	svc      *screen.Services
	title    string
	language string
	phase    phase

	choice   components.MultiChoice
	feedback session.Feedback
	warnings []string

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for the article title in the learner's
// current language.
func New(svc *screen.Services, title string) *QuizScreen {
	return &QuizScreen{
		svc:      svc,
		title:    title,
		language: svc.Prefs.Language().Code,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	l := s.svc.Learner
	// A previous quiz may still be showing its result or have been left
	// unfinished; either way this screen starts a fresh one.
	switch l.Phase() {
	case session.PhaseCompleted:
		_ = l.Reset()
	case session.PhaseInProgress:
		_ = l.Abandon()
	}

	eng := s.svc.Engine
	title, language := s.title, s.language
	return func() tea.Msg {
		res, err := eng.StartQuiz(context.Background(), l, title, language)
		return quizReadyMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// HandlesEscape keeps the app from popping the screen mid-quiz so the
// learner can confirm first.
func (s *QuizScreen) HandlesEscape() bool {
	return s.phase == phaseQuestion || s.phase == phaseFeedback
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: optionKeys(len(s.choice.Options)), Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	return nil
}

// optionKeys is the number-key range that picks one of n options.
func optionKeys(n int) string {
	if n <= 1 {
		return "1"
	}
	return fmt.Sprintf("1-%d", n)
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.phase == phaseError:
		return renderError(width, s.errMsg)
	case s.phase == phaseLoading:
		return renderLoading(width)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width)
	case s.phase == phaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleReady(msg)
	case feedbackDoneMsg:
		return s.handleFeedbackDone()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.svc.Log != nil {
			s.svc.Log.Warn("quiz start failed", "title", s.title, "error", msg.Err)
		}
		s.errMsg = apperr.UserMessage(msg.Err)
		s.phase = phaseError
		return s, nil
	}
	s.warnings = msg.Result.Warnings
	s.nextQuestion()
	return s, nil
}

// nextQuestion loads the learner's current item into the choice list.
func (s *QuizScreen) nextQuestion() {
	item, ok := s.svc.Learner.Current()
	if !ok {
		s.phase = phaseError
		s.errMsg = "This quiz has no questions."
		return
	}
	v := item.View()
	s.choice = components.NewMultiChoice(v.Question, v.Options, 0)
	s.phase = phaseQuestion
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseError {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			_ = s.svc.Learner.Abandon()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseFeedback:
		if key == "esc" && !s.feedback.Completed {
			s.showingQuitConfirm = true
			return s, nil
		}
		return s, func() tea.Msg { return feedbackDoneMsg{} }

	case phaseQuestion:
		if key == "esc" {
			s.showingQuitConfirm = true
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.submit()
		}
		return s, cmd
	}
	return s, nil
}

// submit records the chosen option with the learner and shows feedback.
func (s *QuizScreen) submit() tea.Cmd {
	fb, err := s.svc.Learner.Submit(context.Background(), s.choice.Chosen())
	if err != nil {
		s.errMsg = apperr.UserMessage(err)
		s.phase = phaseError
		return nil
	}
	s.feedback = fb
	s.choice.Reveal(fb.CorrectAnswer)
	s.phase = phaseFeedback
	return nil
}

func (s *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.phase != phaseFeedback {
		return s, nil
	}
	if s.feedback.Completed {
		sum := session.BuildSummary(s.svc.Learner.Session())
		next := summary.New(s.svc, sum)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	s.nextQuestion()
	return s, nil
}
