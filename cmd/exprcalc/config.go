package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mgomes/exprcalc/calc"
	"gopkg.in/yaml.v3"
)

const envPrefix = "EXPRCALC_"

// Config is the CLI configuration. Values come from defaults, then an
// optional YAML file, then EXPRCALC_* environment variables (a .env file is
// loaded into the environment first when present).
type Config struct {
	Notation       string `yaml:"notation"`
	RecursionLimit int    `yaml:"recursion_limit"`
	MaxTokens      int    `yaml:"max_tokens"`
	HistorySize    int    `yaml:"history_size"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

func defaultConfig() Config {
	return Config{
		Notation:    "prefix",
		HistorySize: 100,
		LogLevel:    "warn",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		if err := decodeConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := loadDotEnv(); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

// loadDotEnv reads EXPRCALC_ENV_PATH (default .env). A missing file is not
// an error; variables already set in the environment win.
func loadDotEnv() error {
	path := os.Getenv(envPrefix + "ENV_PATH")
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

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "NOTATION"); ok {
		cfg.Notation = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "LOG_FILE"); ok {
		cfg.LogFile = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"RECURSION_LIMIT", &cfg.RecursionLimit},
		{"MAX_TOKENS", &cfg.MaxTokens},
		{"HISTORY_SIZE", &cfg.HistorySize},
	}
	for _, item := range ints {
		v, ok := lookup(envPrefix + item.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %q is not an integer", envPrefix, item.key, v)
		}
		*item.dst = n
	}
	return nil
}

func (c Config) validate() error {
	if _, err := calc.ParseNotation(c.Notation); err != nil {
		return fmt.Errorf("notation: %w", err)
	}
	if c.RecursionLimit < 0 {
		return fmt.Errorf("recursion_limit must be non-negative, got %d", c.RecursionLimit)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d", c.MaxTokens)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must be non-negative, got %d", c.HistorySize)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) notation() calc.Notation {
	n, err := calc.ParseNotation(c.Notation)
	if err != nil {
		return calc.Prefix
	}
	return n
}

func (c Config) engine() (*calc.Engine, error) {
	return calc.NewEngine(calc.Config{
		RecursionLimit: c.RecursionLimit,
		MaxTokens:      c.MaxTokens,
	})
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// newLogger writes text logs to LogFile when set, otherwise to fallback.
// The returned func closes the log file.
func newLogger(cfg Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	w := fallback
	closeFn := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
