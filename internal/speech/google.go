package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultGoogleTTSURL is the public text-to-speech endpoint.
const DefaultGoogleTTSURL = "https://translate.google.com/translate_tts"

// googleChunkLimit is the longest text the endpoint accepts per request.
const googleChunkLimit = 200

// GoogleTTS synthesizes speech with the keyless Google TTS endpoint.
type GoogleTTS struct {
	endpoint string
	client   *http.Client
}

// NewGoogleTTS creates a GoogleTTS. An empty endpoint uses DefaultGoogleTTSURL.
func NewGoogleTTS(endpoint string, timeout time.Duration) *GoogleTTS {
	if endpoint == "" {
		endpoint = DefaultGoogleTTSURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleTTS{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

// Synthesize requests each chunk of text and concatenates the MP3 frames.
func (g *GoogleTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := splitChunks(text, googleChunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	var buf bytes.Buffer
	for i, c := range chunks {
		data, err := g.fetch(ctx, c, lang, i, len(chunks))
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func (g *GoogleTTS) fetch(ctx context.Context, text, lang string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("idx", fmt.Sprint(idx))
	params.Set("total", fmt.Sprint(total))
	params.Set("textlen", fmt.Sprint(utf8.RuneCountInString(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitChunks breaks text into pieces of at most limit runes, preferring
// word boundaries. A single word longer than limit is split mid-word.
func splitChunks(text string, limit int) []string {
	var (
		chunks []string
		cur    []string
		curLen int
	)
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, " "))
			cur, curLen = nil, 0
		}
	}

	for _, w := range strings.Fields(text) {
		wl := utf8.RuneCountInString(w)
		for wl > limit {
			flush()
			r := []rune(w)
			chunks = append(chunks, string(r[:limit]))
			w = string(r[limit:])
			wl = len(r) - limit
		}
		extra := wl
		if len(cur) > 0 {
			extra++ // joining space
		}
		if curLen+extra > limit {
			flush()
			extra = wl
		}
		cur = append(cur, w)
		curLen += extra
	}
	flush()
	return chunks
}
