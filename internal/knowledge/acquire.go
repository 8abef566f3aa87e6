package knowledge

import (
	"context"

	"github.com/abhisek/itihas/internal/apperr"
)

// ArticleFetcher fetches a title in one language.
type ArticleFetcher interface {
	Fetch(ctx context.Context, title, lang string) Result
}

// Acquisition is fetched content plus the language that produced it.
type Acquisition struct {
	Article   Article
	Requested string
	Effective string
	FellBack  bool
}

// Acquire fetches title in the requested language and, when that yields no
// content and requested differs from fallback, tries fallback exactly once.
// Ambiguity is terminal and does not trigger the fallback.
func Acquire(ctx context.Context, f ArticleFetcher, title, requested, fallback string) (*Acquisition, error) {
	tried := []string{requested}

	r := f.Fetch(ctx, title, requested)
	if r.Outcome == OutcomeAmbiguous {
		return nil, &apperr.ErrAmbiguousTopic{Title: title, Candidates: r.Candidates}
	}
	if r.HasContent() {
		return &Acquisition{Article: r.Article, Requested: requested, Effective: requested}, nil
	}

	if fallback == "" || fallback == requested {
		return nil, &apperr.ErrContentNotFound{Title: title, Languages: tried}
	}

	tried = append(tried, fallback)
	r = f.Fetch(ctx, title, fallback)
	if r.Outcome == OutcomeAmbiguous {
		return nil, &apperr.ErrAmbiguousTopic{Title: title, Candidates: r.Candidates}
	}
	if !r.HasContent() {
		return nil, &apperr.ErrContentNotFound{Title: title, Languages: tried}
	}
	return &Acquisition{Article: r.Article, Requested: requested, Effective: fallback, FellBack: true}, nil
}
