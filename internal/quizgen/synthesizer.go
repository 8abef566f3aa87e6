package quizgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/textproc"
	"github.com/abhisek/itihas/internal/translate"
)

// Translator translates a batch of texts without failing. *translate.Adapter
// satisfies it.
type Translator interface {
	TranslateAll(ctx context.Context, texts []string, source, target string) []translate.Translation
}

// Synthesizer turns article text into quiz items. It is safe for
// concurrent use.
type Synthesizer struct {
	cfg Config
	tr  Translator
	log *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand // nil means the global source
}

// New creates a Synthesizer. A nil Translator disables localization.
func New(cfg Config, tr Translator, log *logger.Logger) *Synthesizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Synthesizer{cfg: cfg.withDefaults(), tr: tr, log: log}
}

// WithRand makes sampling draw from r. Used for reproducible tests.
func (s *Synthesizer) WithRand(r *rand.Rand) *Synthesizer {
	s.rng = r
	return s
}

// Config returns the effective configuration.
func (s *Synthesizer) Config() Config { return s.cfg }

// Synthesize builds min(QuestionCount, sentences) items from in.Text.
// It fails with *apperr.ErrInsufficientContent when the text has fewer
// than MinSentences qualifying sentences. Translation is performed here so
// a quiz does not change once created; translation failures only degrade
// the localized form.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) ([]Item, error) {
	sentences := textproc.Segment(textproc.Normalize(in.Text), s.cfg.MinSentenceWords)
	if len(sentences) < s.cfg.MinSentences {
		return nil, &apperr.ErrInsufficientContent{
			Title: in.Topic,
			Have:  len(sentences),
			Need:  s.cfg.MinSentences,
		}
	}

	items := s.build(in.Topic, sentences)
	for _, it := range items {
		if err := Validate(it); err != nil {
			// Segment de-duplicates, so this indicates a bug.
			return nil, fmt.Errorf("synthesize quiz: %w", err)
		}
	}

	if s.tr != nil && in.TargetLang != "" && in.TargetLang != in.SourceLang {
		s.localize(ctx, items, in.SourceLang, in.TargetLang)
	}

	s.log.Debug("quiz synthesized", "topic", in.Topic, "sentences", len(sentences), "items", len(items))
	return items, nil
}

func (s *Synthesizer) build(topic string, sentences []string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := min(s.cfg.QuestionCount, len(sentences))
	seeds := s.perm(len(sentences))[:k]
	question := fmt.Sprintf(QuestionTemplate, topic)

	items := make([]Item, 0, k)
	for _, si := range seeds {
		correct := sentences[si]
		pool := lo.Filter(sentences, func(c string, _ int) bool { return c != correct })

		n := min(s.cfg.Distractors, len(pool))
		options := make([]string, 0, n+1)
		options = append(options, correct)
		for _, pi := range s.perm(len(pool))[:n] {
			options = append(options, pool[pi])
		}
		s.shuffle(options)

		items = append(items, Item{
			ID:            uuid.NewString(),
			Question:      question,
			Options:       options,
			CorrectAnswer: correct,
		})
	}
	return items
}

// localize translates every question and option in one batch and attaches
// the results. If translation maps two options to the same text the item
// keeps its source options so the invariants still hold.
func (s *Synthesizer) localize(ctx context.Context, items []Item, source, target string) {
	var texts []string
	for _, it := range items {
		texts = append(texts, it.Question)
		texts = append(texts, it.Options...)
	}
	out := s.tr.TranslateAll(ctx, texts, source, target)

	pos := 0
	for i := range items {
		it := &items[i]
		q := out[pos]
		opts := out[pos+1 : pos+1+len(it.Options)]
		pos += 1 + len(it.Options)

		loc := &Localized{Language: target, Question: q.Text}
		var warnings []string
		if q.Warning != "" {
			warnings = append(warnings, q.Warning)
		}

		optTexts := lo.Map(opts, func(t translate.Translation, _ int) string { return t.Text })
		for _, t := range opts {
			if t.Warning != "" {
				warnings = append(warnings, t.Warning)
			}
		}
		if len(lo.Uniq(optTexts)) == len(optTexts) && !slices.Contains(optTexts, "") {
			loc.Options = optTexts
			loc.CorrectAnswer = optTexts[slices.Index(it.Options, it.CorrectAnswer)]
		} else {
			s.log.Warn("translated options collide, keeping source options", "item", it.ID, "target", target)
			loc.Options = slices.Clone(it.Options)
			loc.CorrectAnswer = it.CorrectAnswer
		}
		if loc.Question == "" {
			loc.Question = it.Question
		}
		if len(warnings) > 0 {
			loc.Warning = strings.Join(lo.Uniq(warnings), "; ")
		}
		it.Localized = loc
	}
}

func (s *Synthesizer) perm(n int) []int {
	if s.rng != nil {
		return s.rng.Perm(n)
	}
	return rand.Perm(n)
}

func (s *Synthesizer) shuffle(xs []string) {
	swap := func(i, j int) { xs[i], xs[j] = xs[j], xs[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(xs), swap)
		return
	}
	rand.Shuffle(len(xs), swap)
}
