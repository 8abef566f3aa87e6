package knowledge

import (
	"context"
	"strings"
	"sync"
)

// StaticSource is an in-memory Source for tests and offline use. Search
// matches pages whose title contains the query, case-insensitively, in
// insertion order.
type StaticSource struct {
	mu       sync.Mutex
	pages    map[string][]Summary // lang -> pages
	SearchFn func(query, lang string) error
	FetchFn  func(title, lang string) error

	searches int
	fetches  int
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{pages: make(map[string][]Summary)}
}

// Add registers a page in lang.
func (s *StaticSource) Add(lang, title, extract string) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[lang] = append(s.pages[lang], Summary{Title: title, Extract: extract})
	return s
}

// AddDisambiguation registers a disambiguation page in lang.
func (s *StaticSource) AddDisambiguation(lang, title string) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[lang] = append(s.pages[lang], Summary{Title: title, Extract: title + " may refer to:", Disambiguation: true})
	return s
}

func (s *StaticSource) Search(_ context.Context, query, lang string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches++
	if s.SearchFn != nil {
		if err := s.SearchFn(query, lang); err != nil {
			return nil, err
		}
	}

	q := strings.ToLower(query)
	var out []string
	for _, p := range s.pages[lang] {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p.Title)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *StaticSource) FetchSummary(_ context.Context, title, lang string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.FetchFn != nil {
		if err := s.FetchFn(title, lang); err != nil {
			return Summary{}, err
		}
	}
	for _, p := range s.pages[lang] {
		if p.Title == title {
			return p, nil
		}
	}
	return Summary{}, ErrNotFound
}

// Calls returns the number of Search and FetchSummary calls made.
func (s *StaticSource) Calls() (searches, fetches int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches, s.fetches
}
