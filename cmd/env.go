package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/config"
	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/llm"
	"github.com/abhisek/braincourse/internal/profile"
	"github.com/abhisek/braincourse/internal/quiz"
	"github.com/abhisek/braincourse/internal/store"
	"github.com/abhisek/braincourse/internal/tutor"
)

// env is everything a command needs, built from the resolved configuration.
type env struct {
	cfg   config.Config
	log   *slog.Logger
	store *store.Store
	svc   *tutor.Service

	// llmErr is why no provider could be built; nil when one is configured.
	llmErr error

	closers []io.Closer
}

type envOptions struct {
	// TUI sends logs to a file so the alternate screen stays clean.
	TUI bool

	// NeedLLM prints a warning when no provider is configured.
	NeedLLM bool
}

// loadConfig resolves config file, .env and environment, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{ConfigPath: path})
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.DSN = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.User = v
	}
	return cfg, nil
}

// openEnv wires logger, store, provider and service. Callers must Close it.
func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	logCfg := cfg.Logging
	if opts.TUI && logCfg.File == "" {
		logCfg.File = config.DefaultLogPath()
	}
	log, closer, err := config.NewLogger(logCfg, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	e.log = log
	e.closers = append(e.closers, closer)

	if cfg.Store.Driver == store.DriverSQLite && isFilePath(cfg.Store.DSN) {
		if err := store.EnsureDir(cfg.Store.DSN); err != nil {
			e.Close()
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	st, err := store.Open(ctx, store.Options{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DSN,
		Logger: log,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.Events())
	if err != nil {
		e.llmErr = err
		provider = unavailableProvider{err: err}
		if opts.NeedLLM || opts.TUI {
			fmt.Fprintln(os.Stderr, "warning: LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "warning: AI features will be unavailable.")
		}
	}
	log.Debug("provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelID(), "ok", err == nil)

	gen := content.New(provider, generationConfig(cfg.Generation))
	e.svc = tutor.New(tutor.Options{
		Profiles:        st.Profiles(),
		Generator:       gen,
		Orchestrator:    quiz.New(gen, quiz.WithTimeout(cfg.Generation.Timeout)),
		Sessions:        st.Events(),
		Reports:         st.Reports(),
		PracticeLengths: cfg.Practice.Lengths,
		Logger:          log,
	})
	return e, nil
}

// Close releases the store and the log file, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

// user returns the normalized id of the acting profile.
func (e *env) user() (string, error) {
	if e.cfg.User == "" {
		return "", errors.New("no user selected: pass --user or set BRAINCOURSE_USER")
	}
	return profile.NormalizeID(e.cfg.User)
}

// me loads the acting profile.
func (e *env) me(ctx context.Context) (*profile.Profile, error) {
	id, err := e.user()
	if err != nil {
		return nil, err
	}
	p, err := e.svc.Profile(ctx, id)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s (create it with `braincourse profile create`)", err, id)
	}
	return p, err
}

func generationConfig(g config.GenerationConfig) content.Config {
	c := content.DefaultConfig()
	c.Temperature = g.Temperature
	c.MaxTokens = g.MaxTokens
	c.TextMaxTokens = g.TextMaxTokens
	return c
}

// isFilePath reports whether a sqlite DSN names a file on disk.
func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// unavailableProvider stands in when no backend is configured so the rest
// of the app still works; every generation fails as retryable.
type unavailableProvider struct {
	err error
}

func (p unavailableProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, &llm.ErrProviderUnavailable{Err: p.err}
}

func (unavailableProvider) ModelID() string { return "none" }
