// Package config loads the optional prepterm.yaml file that tunes a
// session: question count, time budget, starting difficulty, and the
// negotiation phase. A missing file is not an error; everything has a
// default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/session"
)

// Duration parses YAML strings like "15m" or "1h30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// File is the on-disk configuration shape.
type File struct {
	MaxQuestions       int      `yaml:"max_questions"`
	TimeBudget         Duration `yaml:"time_budget"`
	StartingDifficulty string   `yaml:"starting_difficulty"`

	Negotiation struct {
		Enabled *bool `yaml:"enabled"`
		Turns   int   `yaml:"turns"`
	} `yaml:"negotiation"`

	// QuestionSchedule is the repeating technical/behavioral cycle for
	// the questioning phase.
	QuestionSchedule []string `yaml:"question_type_schedule"`

	// Bank is an optional path to a custom question bank (JSON),
	// relative to the config file.
	Bank string `yaml:"bank"`

	// DB overrides the database path, below the --db flag and the
	// PREPTERM_DB env var in priority.
	DB string `yaml:"db"`
}

// Config is the resolved configuration: session options plus the
// file paths the commands need.
type Config struct {
	Session  session.Config
	BankPath string // empty means the built-in bank
	DBPath   string // empty means the default resolution order
}

// DefaultPath returns the first config file that exists, in priority
// order: ./prepterm.yaml, then $XDG_CONFIG_HOME/prepterm/config.yaml
// (falling back to ~/.config). Returns "" when none exists.
func DefaultPath() string {
	if _, err := os.Stat("prepterm.yaml"); err == nil {
		return "prepterm.yaml"
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	p := filepath.Join(configHome, "prepterm", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Load reads and resolves the config file at path. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Session: session.DefaultConfig()}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := apply(cfg, &f, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// apply folds the file values over the defaults. Zero values in the
// file leave the default in place.
func apply(cfg *Config, f *File, baseDir string) error {
	if f.MaxQuestions < 0 {
		return fmt.Errorf("max_questions must be positive, got %d", f.MaxQuestions)
	}
	if f.MaxQuestions > 0 {
		cfg.Session.MaxQuestions = f.MaxQuestions
	}
	if f.TimeBudget < 0 {
		return fmt.Errorf("time_budget must be positive, got %s", time.Duration(f.TimeBudget))
	}
	if f.TimeBudget > 0 {
		cfg.Session.TimeBudget = time.Duration(f.TimeBudget)
	}
	if f.StartingDifficulty != "" {
		tier, ok := bank.TierFromString(f.StartingDifficulty)
		if !ok {
			return fmt.Errorf("starting_difficulty: unknown tier %q", f.StartingDifficulty)
		}
		cfg.Session.StartingTier = tier
	}
	if f.Negotiation.Enabled != nil {
		cfg.Session.EnableNegotiation = *f.Negotiation.Enabled
	}
	if f.Negotiation.Turns < 0 {
		return fmt.Errorf("negotiation.turns must be positive, got %d", f.Negotiation.Turns)
	}
	if f.Negotiation.Turns > 0 {
		cfg.Session.NegotiationTurns = f.Negotiation.Turns
	}
	if len(f.QuestionSchedule) > 0 {
		schedule := make([]bank.QuestionType, len(f.QuestionSchedule))
		for i, name := range f.QuestionSchedule {
			schedule[i] = bank.QuestionType(name)
		}
		// Session.Validate rejects unknown types after apply.
		cfg.Session.TypeSchedule = schedule
	}

	if f.Bank != "" {
		cfg.BankPath = resolvePath(baseDir, f.Bank)
	}
	if f.DB != "" {
		cfg.DBPath = resolvePath(baseDir, f.DB)
	}
	return nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
