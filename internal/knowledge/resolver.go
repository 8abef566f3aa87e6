package knowledge

import (
	"context"
	"strings"

	"github.com/abhisek/itihas/internal/apperr"
)

// DefaultSearchLimit is the number of ranked candidates requested per topic.
const DefaultSearchLimit = 5

// Resolver turns a free-text topic into ranked canonical titles. It
// searches the default language only; content fallback is the fetch
// caller's concern.
type Resolver struct {
	src   Source
	lang  string
	limit int
}

// NewResolver creates a Resolver searching in lang.
func NewResolver(src Source, lang string, limit int) *Resolver {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &Resolver{src: src, lang: lang, limit: limit}
}

// Resolve returns candidate titles for topic, best match first. It returns
// *apperr.ErrNoResults when the search finds nothing and
// *apperr.ErrTransientService when the source cannot be reached.
func (r *Resolver) Resolve(ctx context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	titles, err := r.src.Search(ctx, topic, r.lang, r.limit)
	if err != nil {
		return nil, &apperr.ErrTransientService{Service: "knowledge source", Err: err}
	}
	if len(titles) == 0 {
		return nil, &apperr.ErrNoResults{Topic: topic}
	}
	return titles, nil
}
