package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/logger"
)

const (
	defaultTimeout = 10 * time.Second
	maxParallel    = 4
)

// Translation is the outcome of one adapter call. When Translated is
// false, Text is the input unchanged and Warning says why (empty for the
// no-op paths).
type Translation struct {
	Text       string
	Language   string
	Translated bool
	Warning    string
}

// Adapter wraps a Service so that translation never fails: any error
// degrades to the source text with a logged warning. A nil Service makes
// every call a no-op.
type Adapter struct {
	svc     Service
	timeout time.Duration
	log     *logger.Logger
}

// NewAdapter creates an Adapter. Each call is bounded by timeout.
func NewAdapter(svc Service, timeout time.Duration, log *logger.Logger) *Adapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Adapter{svc: svc, timeout: timeout, log: log}
}

// Translate returns text translated from source into target, or text
// itself on any failure. Empty or whitespace-only text yields "".
func (a *Adapter) Translate(ctx context.Context, text, source, target string) string {
	return a.TranslateDetailed(ctx, text, source, target).Text
}

// TranslateDetailed is Translate with the outcome attached.
func (a *Adapter) TranslateDetailed(ctx context.Context, text, source, target string) Translation {
	if strings.TrimSpace(text) == "" {
		return Translation{Text: "", Language: target}
	}
	if a.skip(source, target) {
		return Translation{Text: text, Language: source}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.svc.Translate(ctx, text, target)
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty translation")
	}
	if err != nil {
		return a.degrade(text, source, target, err)
	}
	return Translation{Text: out, Language: target, Translated: true}
}

// TranslateAll translates texts preserving order. A BatchService is tried
// first with one request; otherwise, or if the batch fails, texts are
// translated individually with bounded parallelism.
func (a *Adapter) TranslateAll(ctx context.Context, texts []string, source, target string) []Translation {
	out := make([]Translation, len(texts))
	if len(texts) == 0 {
		return out
	}

	if batch, ok := a.svc.(BatchService); ok && !a.skip(source, target) {
		if res, ok := a.translateBatch(ctx, batch, texts, source, target); ok {
			return res
		}
	}

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i, t := range texts {
		g.Go(func() error {
			out[i] = a.TranslateDetailed(ctx, t, source, target)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (a *Adapter) translateBatch(ctx context.Context, batch BatchService, texts []string, source, target string) ([]Translation, bool) {
	// Blank entries are answered locally and excluded from the request.
	var (
		idx     []int
		pending []string
	)
	out := make([]Translation, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			out[i] = Translation{Language: target}
			continue
		}
		idx = append(idx, i)
		pending = append(pending, t)
	}
	if len(pending) == 0 {
		return out, true
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := batch.TranslateBatch(ctx, pending, target)
	if err != nil || len(res) != len(pending) {
		if err == nil {
			err = fmt.Errorf("batch returned %d texts, want %d", len(res), len(pending))
		}
		a.log.Warn("batch translation failed, translating individually", "target", target, "count", len(pending), "err", err)
		return nil, false
	}

	for j, i := range idx {
		if strings.TrimSpace(res[j]) == "" {
			out[i] = a.degrade(texts[i], source, target, errors.New("empty translation"))
			continue
		}
		out[i] = Translation{Text: res[j], Language: target, Translated: true}
	}
	return out, true
}

func (a *Adapter) skip(source, target string) bool {
	return a.svc == nil || target == "" || (source != "" && source == target)
}

func (a *Adapter) degrade(text, source, target string, err error) Translation {
	terr := &apperr.ErrTransientService{Service: "translation service", Err: err}
	a.log.Warn("translation failed, using source text", "source", source, "target", target, "err", err)
	return Translation{Text: text, Language: source, Warning: terr.Error()}
}
