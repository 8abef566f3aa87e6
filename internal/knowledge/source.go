// Package knowledge resolves topics to canonical article titles and fetches
// article summaries with caching and a one-shot language fallback.
package knowledge

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Source when the requested page does not exist.
var ErrNotFound = errors.New("page not found")

// ErrEmptyTopic is returned when a topic is blank after trimming.
var ErrEmptyTopic = errors.New("topic must not be empty")

// Source is a keyed, language-parameterized encyclopedic corpus.
type Source interface {
	// Search returns up to limit ranked titles for query in lang.
	Search(ctx context.Context, query, lang string, limit int) ([]string, error)

	// FetchSummary returns the summary of the page with the exact title.
	// An empty Extract means the page has no usable content.
	FetchSummary(ctx context.Context, title, lang string) (Summary, error)
}

// Summary is the raw payload of a summary lookup.
type Summary struct {
	Title          string
	Extract        string
	Disambiguation bool
}

// Article is fetched content. Its identity is (Title, Language).
type Article struct {
	Title      string `json:"title"`
	Language   string `json:"language"`
	RawSummary string `json:"raw_summary"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}
