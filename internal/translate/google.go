package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleURL is the public translate endpoint used by web clients.
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// GoogleService calls the keyless Google translate endpoint.
type GoogleService struct {
	endpoint string
	client   *http.Client
}

// NewGoogleService creates a GoogleService. An empty endpoint uses
// DefaultGoogleURL.
func NewGoogleService(endpoint string, timeout time.Duration) *GoogleService {
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleService{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

func (g *GoogleService) Translate(ctx context.Context, text, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read response: %w", err)
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts the translated segments from the nested
// array payload: [[["translated","source",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate: malformed response: %w", err)
	}
	if len(payload) == 0 {
		return "", errors.New("translate: empty response")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("translate: malformed segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("translate: no translated text in response")
	}
	return b.String(), nil
}
