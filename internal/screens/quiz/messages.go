package quiz

import "github.com/abhisek/itihas/internal/pipeline"

// quizReadyMsg is sent when the quiz has been synthesized and bound to the
// learner's session.
type quizReadyMsg struct {
	Result *pipeline.QuizResult
	Err    error
}

// feedbackDoneMsg is sent when the learner dismisses answer feedback.
type feedbackDoneMsg struct{}
