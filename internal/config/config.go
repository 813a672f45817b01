// Package config assembles the application configuration from built-in
// defaults, a TOML file, a .env file and BRAINCOURSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/braincourse/internal/llm"
	"github.com/abhisek/braincourse/internal/store"
)

// Config is the resolved application configuration.
type Config struct {
	LLM        llm.Config
	Store      StoreConfig
	Practice   PracticeConfig
	Generation GenerationConfig
	Logging    LoggingConfig

	// User is the default profile email for commands and the TUI.
	User string
}

// StoreConfig selects the profile database.
type StoreConfig struct {
	Driver string
	DSN    string
}

// PracticeConfig controls practice quiz lengths.
type PracticeConfig struct {
	DefaultLength int
	Lengths       []int
}

// GenerationConfig controls content generation.
type GenerationConfig struct {
	// Timeout bounds the wait for a quiz to be generated.
	Timeout       time.Duration
	Temperature   float64
	MaxTokens     int
	TextMaxTokens int
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string
	Format string

	// File, when set, receives log output instead of stderr.
	File string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Store: StoreConfig{
			Driver: store.DriverSQLite,
			DSN:    DefaultDBPath(),
		},
		Practice: PracticeConfig{
			DefaultLength: 5,
			Lengths:       []int{3, 5, 10},
		},
		Generation: GenerationConfig{
			Timeout:       45 * time.Second,
			Temperature:   0.7,
			MaxTokens:     2048,
			TextMaxTokens: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadOptions locates the files read by Load. Empty paths use the defaults;
// a missing file is skipped.
type LoadOptions struct {
	ConfigPath string
	DotEnvPath string
}

// Load resolves the configuration. Priority, highest first: environment
// (including values loaded from .env, which never override real variables),
// config file, defaults. Flags are applied by the caller.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyFile(fc); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	if err := LoadDotEnv(opts.DotEnvPath); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	cfg.LLM.Discover()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyFile overlays the set keys of fc onto c.
func (c *Config) ApplyFile(fc FileConfig) error {
	setString(&c.LLM.Provider, fc.LLM.Provider)
	if err := setDuration(&c.LLM.Timeout, fc.LLM.Timeout, "llm.timeout"); err != nil {
		return err
	}
	backends := []struct {
		dst *llm.BackendConfig
		src BackendFile
	}{
		{&c.LLM.Gemini, fc.LLM.Gemini},
		{&c.LLM.Anthropic, fc.LLM.Anthropic},
		{&c.LLM.OpenAI, fc.LLM.OpenAI},
		{&c.LLM.OpenRouter, fc.LLM.OpenRouter},
	}
	for _, b := range backends {
		setString(&b.dst.Model, b.src.Model)
		setString(&b.dst.BaseURL, b.src.BaseURL)
	}

	r := fc.LLM.Retry
	setValue(&c.LLM.Retry.MaxAttempts, r.MaxAttempts)
	setValue(&c.LLM.Retry.Multiplier, r.Multiplier)
	if err := setDuration(&c.LLM.Retry.InitialWait, r.InitialWait, "llm.retry.initial-wait"); err != nil {
		return err
	}
	if err := setDuration(&c.LLM.Retry.MaxWait, r.MaxWait, "llm.retry.max-wait"); err != nil {
		return err
	}

	setString(&c.Store.Driver, fc.Store.Driver)
	setString(&c.Store.DSN, fc.Store.DSN)

	setValue(&c.Practice.DefaultLength, fc.Practice.DefaultLength)
	if len(fc.Practice.Lengths) > 0 {
		c.Practice.Lengths = slices.Clone(fc.Practice.Lengths)
	}

	g := fc.Generation
	if err := setDuration(&c.Generation.Timeout, g.Timeout, "generation.timeout"); err != nil {
		return err
	}
	setValue(&c.Generation.Temperature, g.Temperature)
	setValue(&c.Generation.MaxTokens, g.MaxTokens)
	setValue(&c.Generation.TextMaxTokens, g.TextMaxTokens)

	setString(&c.Logging.Level, fc.Logging.Level)
	setString(&c.Logging.Format, fc.Logging.Format)
	setString(&c.Logging.File, fc.Logging.File)

	setString(&c.User, fc.User.Email)
	return nil
}

// ApplyEnv overlays BRAINCOURSE_* variables. Provider variables are handled
// by llm.Config.ApplyEnv.
func (c *Config) ApplyEnv() error {
	c.LLM.ApplyEnv()

	envString(&c.Store.Driver, "DB_DRIVER")
	envString(&c.Store.DSN, "DB")
	envString(&c.User, "USER")
	envString(&c.Logging.Level, "LOG_LEVEL")
	envString(&c.Logging.Format, "LOG_FORMAT")
	envString(&c.Logging.File, "LOG_FILE")

	if v := os.Getenv(envPrefix + "GENERATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sGENERATION_TIMEOUT: %w", envPrefix, err)
		}
		c.Generation.Timeout = d
	}
	if v := os.Getenv(envPrefix + "PRACTICE_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPRACTICE_LENGTH: %w", envPrefix, err)
		}
		c.Practice.DefaultLength = n
	}
	return nil
}

// Validate checks the settings that do not depend on a provider key. A
// missing LLM key is reported separately by LLM.Validate so commands that
// never generate content keep working.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case store.DriverSQLite, store.DriverPostgres, store.DriverMySQL:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.DSN == "" {
		return errors.New("store dsn is empty")
	}
	if len(c.Practice.Lengths) == 0 {
		return errors.New("practice lengths are empty")
	}
	for _, n := range c.Practice.Lengths {
		if n <= 0 {
			return fmt.Errorf("practice length %d must be positive", n)
		}
	}
	if !slices.Contains(c.Practice.Lengths, c.Practice.DefaultLength) {
		return fmt.Errorf("default practice length %d is not one of %v", c.Practice.DefaultLength, c.Practice.Lengths)
	}
	if c.Generation.Timeout < 0 {
		return errors.New("generation timeout is negative")
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

const envPrefix = "BRAINCOURSE_"

func envString(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setValue[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string, key string) error {
	if src == nil || *src == "" {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
