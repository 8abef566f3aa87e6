// Package apperr defines the user-facing error taxonomy of the content
// pipeline. Terminal errors end the current request and are shown to the
// learner; transient service errors only ever surface as warnings.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResults indicates a topic search returned no candidate titles.
type ErrNoResults struct {
	Topic string
}

func (e *ErrNoResults) Error() string {
	return fmt.Sprintf("no results for topic %q", e.Topic)
}

// ErrContentNotFound indicates no summary exists in the requested language
// nor in the fallback language.
type ErrContentNotFound struct {
	Title     string
	Languages []string // languages tried, in order
}

func (e *ErrContentNotFound) Error() string {
	return fmt.Sprintf("no content for %q (tried %s)", e.Title, strings.Join(e.Languages, ", "))
}

// ErrInsufficientContent indicates the article has too few qualifying
// sentences to build a quiz.
type ErrInsufficientContent struct {
	Title string
	Have  int
	Need  int
}

func (e *ErrInsufficientContent) Error() string {
	return fmt.Sprintf("%q has %d qualifying sentences, need at least %d", e.Title, e.Have, e.Need)
}

// ErrAmbiguousTopic indicates the title resolves to several equally valid
// articles. Candidates lists the choices offered to the learner.
type ErrAmbiguousTopic struct {
	Title      string
	Candidates []string
}

func (e *ErrAmbiguousTopic) Error() string {
	return fmt.Sprintf("%q is ambiguous (%d candidates)", e.Title, len(e.Candidates))
}

// ErrTransientService wraps a network, timeout or quota failure from an
// external collaborator.
type ErrTransientService struct {
	Service string
	Err     error
}

func (e *ErrTransientService) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
	}
	return e.Service + " unavailable"
}

func (e *ErrTransientService) Unwrap() error { return e.Err }

// IsTerminal reports whether err ends the current request.
func IsTerminal(err error) bool {
	var (
		noRes *ErrNoResults
		nf    *ErrContentNotFound
		ins   *ErrInsufficientContent
		amb   *ErrAmbiguousTopic
	)
	return errors.As(err, &noRes) || errors.As(err, &nf) || errors.As(err, &ins) || errors.As(err, &amb)
}

// UserMessage returns the message the presentation layer shows for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var noRes *ErrNoResults
	if errors.As(err, &noRes) {
		return "No articles found for this topic. Please try another one."
	}
	var nf *ErrContentNotFound
	if errors.As(err, &nf) {
		return fmt.Sprintf("Sorry, we couldn't find anything about %q. Please try another subject.", nf.Title)
	}
	var ins *ErrInsufficientContent
	if errors.As(err, &ins) {
		return "The summary is too short to build a meaningful quiz. Please try a broader topic."
	}
	var amb *ErrAmbiguousTopic
	if errors.As(err, &amb) {
		return "This topic is ambiguous. Please pick a more specific article from the list."
	}
	var tr *ErrTransientService
	if errors.As(err, &tr) {
		return fmt.Sprintf("The %s is not reachable right now. Please try again in a moment.", tr.Service)
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
