package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/config"
	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/llm"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/pipeline"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/store"
)

// appEnv bundles the dependencies shared by the TUI and the content
// subcommands.
type appEnv struct {
	cfg      config.Config
	log      *logger.Logger
	store    *store.Store
	engine   *pipeline.Engine
	learner  *session.Learner
	language lang.Language
	audioDir string

	cleanup func()
}

// openEnv loads configuration, opens the store and builds the pipeline.
// When logToFile is set, logs go to itihas.log beside the database so they
// do not corrupt the terminal UI.
func openEnv(cmd *cobra.Command, logToFile bool) (*appEnv, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg := config.ConfigFromEnv()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	var outputs []string
	if logToFile {
		outputs = append(outputs, filepath.Join(filepath.Dir(dbPath), "itihas.log"))
	}
	log, err := logger.New(cfg.LogMode, outputs...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	language, err := resolveLanguage(cmd, cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	engine, closeEngine, err := pipeline.Build(ctx, cfg, llm.ConfigFromEnv(), st.EventRepo(), log)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	results := st.ResultRepo()
	reg := session.NewRegistry(func() *session.Learner {
		return session.NewLearner(resultRecorder(results), log)
	})
	_, learner := reg.Create()
	if err := preloadHistory(ctx, learner, results); err != nil {
		log.Warn("could not load score history", "err", err)
	}

	audioDir, _ := cmd.Flags().GetString("audio-dir")
	if audioDir == "" {
		audioDir = filepath.Join(filepath.Dir(dbPath), "audio")
	}

	return &appEnv{
		cfg:      cfg,
		log:      log,
		store:    st,
		engine:   engine,
		learner:  learner,
		language: language,
		audioDir: audioDir,
		cleanup: func() {
			closeEngine()
			_ = st.Close()
			log.Sync()
		},
	}, nil
}

// Close releases the pipeline backends and the store.
func (e *appEnv) Close() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// services exposes the environment to the screens.
func (e *appEnv) services() *screen.Services {
	return &screen.Services{
		Engine:   e.engine,
		Prefs:    screen.NewPrefs(e.language),
		Learner:  e.learner,
		Results:  e.store.ResultRepo(),
		AudioDir: e.audioDir,
		Log:      e.log,
	}
}

// resolveLanguage reads --lang, defaulting to def.
func resolveLanguage(cmd *cobra.Command, def string) (lang.Language, error) {
	v, _ := cmd.Flags().GetString("lang")
	if v == "" {
		v = def
	}
	return lang.Lookup(v)
}

// resultRecorder persists completed quizzes to the result repo.
// The write outlives a cancelled caller so a finished quiz is not lost.
func resultRecorder(repo store.ResultRepo) session.ResultRecorder {
	return session.RecorderFunc(func(ctx context.Context, r session.Result) error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return repo.Record(ctx, store.QuizResult{
			SessionID:   r.SessionID,
			Topic:       r.Topic,
			Score:       r.Score,
			Total:       r.Total,
			CompletedAt: r.At,
		})
	})
}

// preloadHistory seeds the learner's score history with stored results.
func preloadHistory(ctx context.Context, l *session.Learner, repo store.ResultRepo) error {
	results, err := repo.History(ctx, "", 0)
	if err != nil {
		return err
	}
	for _, r := range results {
		l.Preload(r.Topic, r.Display())
	}
	return nil
}
