package quizgen

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// ValidationError describes an item that breaks the option invariants.
type ValidationError struct {
	ItemID  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quiz item %s: %s", e.ItemID, e.Message)
}

// Validate checks that an item is renderable and answerable: it has a
// question, its options are unique and non-empty, and the correct answer
// is among them. The localized form, if any, is held to the same rules.
func Validate(it Item) error {
	if err := validateForm(it.ID, it.Question, it.Options, it.CorrectAnswer); err != nil {
		return err
	}
	if l := it.Localized; l != nil {
		if len(l.Options) != len(it.Options) {
			return &ValidationError{ItemID: it.ID, Message: "localized option count differs"}
		}
		return validateForm(it.ID, l.Question, l.Options, l.CorrectAnswer)
	}
	return nil
}

func validateForm(id, question string, options []string, correct string) error {
	if question == "" {
		return &ValidationError{ItemID: id, Message: "question is empty"}
	}
	if len(options) == 0 {
		return &ValidationError{ItemID: id, Message: "no options"}
	}
	if slices.Contains(options, "") {
		return &ValidationError{ItemID: id, Message: "empty option"}
	}
	if len(lo.Uniq(options)) != len(options) {
		return &ValidationError{ItemID: id, Message: "duplicate options"}
	}
	if !slices.Contains(options, correct) {
		return &ValidationError{ItemID: id, Message: "correct answer not among options"}
	}
	return nil
}
