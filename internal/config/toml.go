package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil
// and leave the defaults alone.
type FileConfig struct {
	LLM        LLMFile        `toml:"llm"`
	Store      StoreFile      `toml:"store"`
	Practice   PracticeFile   `toml:"practice"`
	Generation GenerationFile `toml:"generation"`
	Logging    LoggingFile    `toml:"logging"`
	User       UserFile       `toml:"user"`
}

// LLMFile maps the [llm] table.
type LLMFile struct {
	Provider   *string     `toml:"provider"`
	Timeout    *string     `toml:"timeout"`
	Gemini     BackendFile `toml:"gemini"`
	Anthropic  BackendFile `toml:"anthropic"`
	OpenAI     BackendFile `toml:"openai"`
	OpenRouter BackendFile `toml:"openrouter"`
	Retry      RetryFile   `toml:"retry"`
}

// BackendFile maps one [llm.<backend>] table. API keys are read from the
// environment only.
type BackendFile struct {
	Model   *string `toml:"model"`
	BaseURL *string `toml:"base-url"`
}

// RetryFile maps [llm.retry].
type RetryFile struct {
	MaxAttempts *int     `toml:"max-attempts"`
	InitialWait *string  `toml:"initial-wait"`
	MaxWait     *string  `toml:"max-wait"`
	Multiplier  *float64 `toml:"multiplier"`
}

// StoreFile maps [store].
type StoreFile struct {
	Driver *string `toml:"driver"`
	DSN    *string `toml:"dsn"`
}

// PracticeFile maps [practice].
type PracticeFile struct {
	DefaultLength *int  `toml:"default-length"`
	Lengths       []int `toml:"lengths"`
}

// GenerationFile maps [generation].
type GenerationFile struct {
	Timeout       *string  `toml:"timeout"`
	Temperature   *float64 `toml:"temperature"`
	MaxTokens     *int     `toml:"max-tokens"`
	TextMaxTokens *int     `toml:"text-max-tokens"`
}

// LoggingFile maps [logging].
type LoggingFile struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	File   *string `toml:"file"`
}

// UserFile maps [user].
type UserFile struct {
	Email *string `toml:"email"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undec[0].String())
	}
	return cfg, nil
}
