// Package quizgen builds multiple-choice quizzes from article text. Each
// question asks which statement about the topic is correct; the options
// are the correct sentence plus distractor sentences from the same text.
package quizgen

// QuestionTemplate is the fixed question text; %s is the topic.
const QuestionTemplate = "Which of the following statements about '%s' is correct?"

// Item is one generated question.
type Item struct {
	ID string

	// Question, Options and CorrectAnswer are in the source language.
	// CorrectAnswer is always one of Options and Options has no duplicates.
	Question      string
	Options       []string
	CorrectAnswer string

	// Localized holds the forms translated at synthesis time. Nil when no
	// translation was requested.
	Localized *Localized
}

// Localized is the translated form of an Item.
type Localized struct {
	Language      string
	Question      string
	Options       []string
	CorrectAnswer string

	// Warning is set when some text could not be translated and the
	// source form was kept.
	Warning string
}

// View is what the presentation layer renders and what answers are
// compared against.
type View struct {
	Language      string
	Question      string
	Options       []string
	CorrectAnswer string
}

// View returns the localized form when present, else the source form.
func (it Item) View() View {
	if it.Localized != nil {
		return View{
			Language:      it.Localized.Language,
			Question:      it.Localized.Question,
			Options:       it.Localized.Options,
			CorrectAnswer: it.Localized.CorrectAnswer,
		}
	}
	return View{Question: it.Question, Options: it.Options, CorrectAnswer: it.CorrectAnswer}
}

// Input holds everything needed to synthesize a quiz.
type Input struct {
	// Topic names the article in the question template.
	Topic string

	// Text is the article body; it is normalized before segmentation.
	Text string

	// SourceLang is the language Text is written in.
	SourceLang string

	// TargetLang is the language to present the quiz in. Empty or equal
	// to SourceLang means no translation.
	TargetLang string
}
