package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWikipediaURL is the per-language site root.
	DefaultWikipediaURL = "https://{lang}.wikipedia.org"

	userAgent = "itihas/1.0 (educational quiz tool)"
)

// Wikipedia is a Source backed by the MediaWiki search API and the REST
// summary endpoint.
type Wikipedia struct {
	baseURL string
	client  *http.Client
}

// NewWikipedia creates a Wikipedia source. baseURL may contain a {lang}
// placeholder; an empty baseURL uses DefaultWikipediaURL. Every request is
// bounded by timeout.
func NewWikipedia(baseURL string, timeout time.Duration) *Wikipedia {
	if baseURL == "" {
		baseURL = DefaultWikipediaURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Wikipedia{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (w *Wikipedia) root(lang string) string {
	return strings.ReplaceAll(w.baseURL, "{lang}", lang)
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

func (w *Wikipedia) Search(ctx context.Context, query, lang string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("format", "json")

	var resp searchResponse
	if err := w.getJSON(ctx, w.root(lang)+"/w/api.php?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, s := range resp.Query.Search {
		if s.Title != "" {
			titles = append(titles, s.Title)
		}
	}
	return titles, nil
}

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Type    string `json:"type"`
}

func (w *Wikipedia) FetchSummary(ctx context.Context, title, lang string) (Summary, error) {
	var resp summaryResponse
	u := w.root(lang) + "/api/rest_v1/page/summary/" + url.PathEscape(title)
	if err := w.getJSON(ctx, u, &resp); err != nil {
		return Summary{}, fmt.Errorf("fetch summary %q: %w", title, err)
	}
	if resp.Title == "" {
		resp.Title = title
	}
	return Summary{
		Title:          resp.Title,
		Extract:        resp.Extract,
		Disambiguation: resp.Type == "disambiguation",
	}, nil
}

type mediaListResponse struct {
	Items []struct {
		Type      string `json:"type"`
		Thumbnail *struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	} `json:"items"`
}

// ImageURL returns the first image thumbnail of the page, or "" when the
// page has none or the lookup fails.
func (w *Wikipedia) ImageURL(ctx context.Context, title, lang string) string {
	var resp mediaListResponse
	u := w.root(lang) + "/api/rest_v1/page/media-list/" + url.PathEscape(title)
	if err := w.getJSON(ctx, u, &resp); err != nil {
		return ""
	}
	for _, item := range resp.Items {
		if item.Type != "image" || item.Thumbnail == nil || item.Thumbnail.Source == "" {
			continue
		}
		src := item.Thumbnail.Source
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		return src
	}
	return ""
}

func (w *Wikipedia) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
