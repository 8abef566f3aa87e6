package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/itihas/internal/cache"
	"github.com/abhisek/itihas/internal/logger"
)

// DefaultCacheTTL bounds how long fetched summaries are reused.
const DefaultCacheTTL = time.Hour

// candidateLimit is how many titles the per-language search asks for; the
// first is fetched, the rest are offered when the page is ambiguous.
const candidateLimit = 5

// Fetcher retrieves article summaries for a title in one language. It never
// returns an error: every outcome, including transport failures, is a Result.
type Fetcher struct {
	src   Source
	cache cache.Cache
	ttl   time.Duration
	log   *logger.Logger
	group singleflight.Group
}

// NewFetcher creates a Fetcher. A nil cache disables caching.
func NewFetcher(src Source, c cache.Cache, ttl time.Duration, log *logger.Logger) *Fetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher{src: src, cache: c, ttl: ttl, log: log}
}

func cacheKey(title, lang string) string {
	return "summary:" + lang + ":" + title
}

// Fetch resolves the exact title in lang and fetches its summary. Concurrent
// fetches of the same (title, lang) share one lookup. A caller whose ctx ends
// first gets a transient Result while the shared lookup runs on for the rest.
func (f *Fetcher) Fetch(ctx context.Context, title, lang string) Result {
	key := cacheKey(title, lang)

	if f.cache != nil {
		if raw, ok := f.cache.Get(ctx, key); ok {
			var r Result
			if err := json.Unmarshal(raw, &r); err == nil {
				return r
			}
		}
	}

	ch := f.group.DoChan(key, func() (any, error) {
		// Other callers may be waiting on this lookup, so it must outlive
		// the caller that happened to start it.
		shared := context.WithoutCancel(ctx)
		r := f.fetch(shared, title, lang)
		if f.cache != nil && r.cacheable() {
			if raw, err := json.Marshal(r); err == nil {
				f.cache.Set(shared, key, raw, f.ttl)
			}
		}
		return r, nil
	})

	select {
	case res := <-ch:
		return res.Val.(Result)
	case <-ctx.Done():
		return Result{Outcome: OutcomeTransient, Reason: ctx.Err().Error()}
	}
}

func (f *Fetcher) fetch(ctx context.Context, title, lang string) Result {
	titles, err := f.src.Search(ctx, title, lang, candidateLimit)
	if err != nil {
		return f.transient(title, lang, err)
	}
	if len(titles) == 0 {
		return Result{Outcome: OutcomeNotFound}
	}

	resolved := titles[0]
	sum, err := f.src.FetchSummary(ctx, resolved, lang)
	if errors.Is(err, ErrNotFound) {
		return Result{Outcome: OutcomeNotFound}
	}
	if err != nil {
		return f.transient(resolved, lang, err)
	}
	if sum.Disambiguation {
		return Result{Outcome: OutcomeAmbiguous, Candidates: titles[1:]}
	}
	if sum.Extract == "" {
		return Result{Outcome: OutcomeNotFound}
	}

	return Result{
		Outcome: OutcomeOK,
		Article: Article{Title: sum.Title, Language: lang, RawSummary: sum.Extract},
	}
}

func (f *Fetcher) transient(title, lang string, err error) Result {
	f.log.Warn("content fetch failed", "title", title, "lang", lang, "err", err)
	return Result{Outcome: OutcomeTransient, Reason: err.Error()}
}
