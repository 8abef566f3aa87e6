package quizgen

// Config controls quiz shape.
type Config struct {
	// MinSentences is the fewest qualifying sentences a text must have.
	MinSentences int

	// QuestionCount is the number of questions per quiz, capped by the
	// number of qualifying sentences.
	QuestionCount int

	// Distractors is the number of wrong options per question, capped by
	// the size of the distractor pool.
	Distractors int

	// MinSentenceWords is the word count a sentence must exceed to qualify.
	MinSentenceWords int
}

// DefaultConfig returns four-option questions, three per quiz.
func DefaultConfig() Config {
	return Config{
		MinSentences:     4,
		QuestionCount:    3,
		Distractors:      3,
		MinSentenceWords: 8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinSentences <= 0 {
		c.MinSentences = d.MinSentences
	}
	if c.QuestionCount <= 0 {
		c.QuestionCount = d.QuestionCount
	}
	if c.Distractors <= 0 {
		c.Distractors = d.Distractors
	}
	if c.MinSentenceWords <= 0 {
		c.MinSentenceWords = d.MinSentenceWords
	}
	return c
}
