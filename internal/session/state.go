// Package session runs a quiz attempt as an explicit state machine:
// Idle → InProgress → Completed → Idle. A Learner owns one session and the
// learner's score history; a Registry isolates learners from each other.
package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/itihas/internal/quizgen"
)

// Phase is the state of a quiz session.
type Phase int

const (
	PhaseIdle       Phase = iota // No quiz bound
	PhaseInProgress              // Serving questions
	PhaseCompleted               // All questions answered, result recorded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrNoSelection is returned when an answer is submitted with no option
// selected. The session is unchanged.
var ErrNoSelection = errors.New("please select an answer before submitting")

// ErrUnknownAnswer is returned when the submitted answer is not one of the
// current question's options. The session is unchanged.
type ErrUnknownAnswer struct {
	Answer string
}

func (e *ErrUnknownAnswer) Error() string {
	return fmt.Sprintf("%q is not one of the offered options", e.Answer)
}

// ErrNoItems is returned when a quiz is started without questions.
var ErrNoItems = errors.New("cannot start a quiz with no questions")

// ErrInvalidTransition is returned when an action is not allowed in the
// current phase.
type ErrInvalidTransition struct {
	From   Phase
	Action string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}

// QuizSession is one quiz attempt on one topic.
type QuizSession struct {
	ID           string
	Topic        string
	Items        []quizgen.Item
	CurrentIndex int
	Score        int
	Phase        Phase
}

// Total is the number of questions in the session.
func (s QuizSession) Total() int { return len(s.Items) }

// Result renders the score as "<score>/<total>".
func (s QuizSession) Result() string {
	return FormatResult(s.Score, s.Total())
}

// Current returns the item awaiting an answer, if any.
func (s QuizSession) Current() (quizgen.Item, bool) {
	if s.Phase != PhaseInProgress || s.CurrentIndex >= len(s.Items) {
		return quizgen.Item{}, false
	}
	return s.Items[s.CurrentIndex], true
}

// FormatResult renders a score as "<score>/<total>".
func FormatResult(score, total int) string {
	return fmt.Sprintf("%d/%d", score, total)
}

// Feedback describes the outcome of one submitted answer.
type Feedback struct {
	Correct       bool
	Selected      string
	CorrectAnswer string

	// Completed is true when this answer finished the quiz; Result then
	// holds the recorded "<score>/<total>".
	Completed bool
	Result    string
}
