// Package pipeline composes topic resolution, content acquisition,
// translation, quiz synthesis, story formatting and narration into the
// operations the presentation layer invokes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/itihas/internal/cache"
	"github.com/abhisek/itihas/internal/config"
	"github.com/abhisek/itihas/internal/knowledge"
	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/quizgen"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/speech"
	"github.com/abhisek/itihas/internal/story"
	"github.com/abhisek/itihas/internal/textproc"
	"github.com/abhisek/itihas/internal/translate"
)

// SlokaPronunciationLang is the voice used to recite a verse as written.
const SlokaPronunciationLang = "hi"

// ErrEmptyVerse is returned by Sloka for blank input.
var ErrEmptyVerse = errors.New("please enter a sloka")

// ImageFinder looks up a representative image for a title.
type ImageFinder interface {
	ImageURL(ctx context.Context, title, lang string) string
}

// Deps are the collaborators of an Engine. Translator, Speech and Images
// are optional; without them the corresponding features are skipped.
type Deps struct {
	Config     config.Config
	Source     knowledge.Source
	Cache      cache.Cache
	Translator translate.Service
	Speech     speech.Synthesizer
	Images     ImageFinder
	Log        *logger.Logger
}

// Engine runs the content pipeline. It holds no per-learner state and is
// safe for concurrent use.
type Engine struct {
	cfg      config.Config
	resolver *knowledge.Resolver
	fetcher  knowledge.ArticleFetcher
	adapter  *translate.Adapter
	quiz     *quizgen.Synthesizer
	narrator *speech.Narrator
	images   ImageFinder
	log      *logger.Logger
}

// New wires an Engine from deps.
func New(deps Deps) *Engine {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	cfg := deps.Config
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = lang.English.Code
	}
	c := deps.Cache
	if c == nil {
		c = cache.NewMemory(nil)
	}

	adapter := translate.NewAdapter(deps.Translator, cfg.RequestTimeout, log.With("component", "translate"))
	qcfg := quizgen.Config{
		MinSentences:     cfg.MinSentences,
		QuestionCount:    cfg.QuestionCount,
		MinSentenceWords: cfg.MinSentenceWords,
	}

	return &Engine{
		cfg:      cfg,
		resolver: knowledge.NewResolver(deps.Source, cfg.DefaultLanguage, cfg.SearchLimit),
		fetcher:  knowledge.NewFetcher(deps.Source, c, cfg.CacheTTL, log.With("component", "fetcher")),
		adapter:  adapter,
		quiz:     quizgen.New(qcfg, adapter, log.With("component", "quizgen")),
		narrator: speech.NewNarrator(deps.Speech, cfg.RequestTimeout, log.With("component", "speech")),
		images:   deps.Images,
		log:      log,
	}
}

// Synthesizer exposes the quiz synthesizer, e.g. to pin its random source.
func (e *Engine) Synthesizer() *quizgen.Synthesizer { return e.quiz }

// DefaultLanguage returns the search and fallback language code.
func (e *Engine) DefaultLanguage() string { return e.cfg.DefaultLanguage }

// Candidates resolves a free-text topic to ranked article titles.
func (e *Engine) Candidates(ctx context.Context, topic string) ([]string, error) {
	return e.resolver.Resolve(ctx, topic)
}

// SummaryResult is an article summary presented in the learner's language.
type SummaryResult struct {
	Title     string
	Requested string // language code asked for
	Effective string // language code the content was fetched in
	FellBack  bool

	Source string // normalized text in Effective
	Text   string // Source translated into Requested when they differ

	Audio    *speech.Audio
	Warnings []string
}

// Summarize fetches title in language, falling back once to the default
// language, and translates the result into language when needed.
func (e *Engine) Summarize(ctx context.Context, title, language string) (*SummaryResult, error) {
	acq, requested, err := e.acquire(ctx, title, language)
	if err != nil {
		return nil, err
	}

	res := &SummaryResult{
		Title:     acq.Article.Title,
		Requested: requested,
		Effective: acq.Effective,
		FellBack:  acq.FellBack,
		Source:    textproc.Normalize(acq.Article.RawSummary),
	}
	res.Warnings = e.fallbackWarning(acq)

	tr := e.adapter.TranslateDetailed(ctx, res.Source, acq.Effective, requested)
	res.Text = tr.Text
	res.Warnings = appendWarning(res.Warnings, tr.Warning)

	audio, warn := e.narrator.Narrate(ctx, res.Text, lo.Ternary(tr.Translated, requested, acq.Effective))
	res.Audio = audio
	res.Warnings = appendWarning(res.Warnings, warn)
	return res, nil
}

// QuizResult is a synthesized quiz ready to start.
type QuizResult struct {
	Title     string
	Requested string
	Effective string
	FellBack  bool
	Items     []quizgen.Item
	Warnings  []string
}

// BuildQuiz fetches title and synthesizes a quiz localized into language.
func (e *Engine) BuildQuiz(ctx context.Context, title, language string) (*QuizResult, error) {
	acq, requested, err := e.acquire(ctx, title, language)
	if err != nil {
		return nil, err
	}

	items, err := e.quiz.Synthesize(ctx, quizgen.Input{
		Topic:      acq.Article.Title,
		Text:       acq.Article.RawSummary,
		SourceLang: acq.Effective,
		TargetLang: requested,
	})
	if err != nil {
		return nil, err
	}

	res := &QuizResult{
		Title:     acq.Article.Title,
		Requested: requested,
		Effective: acq.Effective,
		FellBack:  acq.FellBack,
		Items:     items,
		Warnings:  e.fallbackWarning(acq),
	}
	for _, it := range items {
		if it.Localized != nil {
			res.Warnings = appendWarning(res.Warnings, it.Localized.Warning)
		}
	}
	return res, nil
}

// StartQuiz builds a quiz and binds it to the learner's session. On any
// error no session is started.
func (e *Engine) StartQuiz(ctx context.Context, l *session.Learner, title, language string) (*QuizResult, error) {
	res, err := e.BuildQuiz(ctx, title, language)
	if err != nil {
		return nil, err
	}
	if _, err := l.Start(res.Title, res.Items); err != nil {
		return nil, err
	}
	return res, nil
}

// StoryResult is a formatted story with its media.
type StoryResult struct {
	Story     story.Story
	Requested string
	Effective string
	FellBack  bool
	Audio     *speech.Audio
	ImageURL  string
	Warnings  []string
}

// Story fetches subject in language (falling back once) and formats it for
// band. The story is told in whichever language produced content; audio
// and image follow that language.
func (e *Engine) Story(ctx context.Context, subject, epithet string, band story.AgeBand, language string) (*StoryResult, error) {
	acq, requested, err := e.acquire(ctx, subject, language)
	if err != nil {
		return nil, err
	}

	st := story.Format(acq.Article, subject, epithet, band)
	res := &StoryResult{
		Story:     st,
		Requested: requested,
		Effective: acq.Effective,
		FellBack:  acq.FellBack,
		Warnings:  e.fallbackWarning(acq),
	}

	audio, warn := e.narrator.Narrate(ctx, st.Narration, acq.Effective)
	res.Audio = audio
	res.Warnings = appendWarning(res.Warnings, warn)

	if e.images != nil {
		ictx, cancel := context.WithTimeout(ctx, e.timeout())
		res.ImageURL = e.images.ImageURL(ictx, acq.Article.Title, acq.Effective)
		cancel()
	}
	return res, nil
}

// SlokaResult is a translated verse with recitation and meaning audio.
type SlokaResult struct {
	Verse         string
	Language      string
	Meaning       string
	Translated    bool
	Pronunciation *speech.Audio
	MeaningAudio  *speech.Audio
	Warnings      []string
}

// Sloka translates a verse into language and narrates both the verse and
// its meaning.
func (e *Engine) Sloka(ctx context.Context, verse, language string) (*SlokaResult, error) {
	verse = strings.TrimSpace(verse)
	if verse == "" {
		return nil, ErrEmptyVerse
	}
	l, err := lang.Lookup(language)
	if err != nil {
		return nil, err
	}

	tr := e.adapter.TranslateDetailed(ctx, verse, "", l.Code)
	res := &SlokaResult{
		Verse:      verse,
		Language:   l.Code,
		Meaning:    tr.Text,
		Translated: tr.Translated,
	}
	res.Warnings = appendWarning(res.Warnings, tr.Warning)

	var warn string
	res.Pronunciation, warn = e.narrator.Narrate(ctx, verse, SlokaPronunciationLang)
	res.Warnings = appendWarning(res.Warnings, warn)
	res.MeaningAudio, warn = e.narrator.Narrate(ctx, res.Meaning, l.Code)
	res.Warnings = appendWarning(res.Warnings, warn)
	return res, nil
}

func (e *Engine) acquire(ctx context.Context, title, language string) (*knowledge.Acquisition, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, "", knowledge.ErrEmptyTopic
	}
	l, err := lang.Lookup(language)
	if err != nil {
		return nil, "", err
	}

	acq, err := knowledge.Acquire(ctx, e.fetcher, title, l.Code, e.cfg.DefaultLanguage)
	if err != nil {
		return nil, "", err
	}
	if acq.FellBack {
		e.log.Warn("content not found in requested language, using fallback",
			"title", title, "requested", acq.Requested, "effective", acq.Effective)
	}
	return acq, l.Code, nil
}

func (e *Engine) fallbackWarning(acq *knowledge.Acquisition) []string {
	if !acq.FellBack {
		return nil
	}
	return []string{fmt.Sprintf("Couldn't find this in %s. Using the %s version instead.",
		lang.LabelFor(acq.Requested), lang.LabelFor(acq.Effective))}
}

func (e *Engine) timeout() time.Duration {
	if e.cfg.RequestTimeout > 0 {
		return e.cfg.RequestTimeout
	}
	return 10 * time.Second
}

func appendWarning(ws []string, w string) []string {
	if w == "" || lo.Contains(ws, w) {
		return ws
	}
	return append(ws, w)
}
