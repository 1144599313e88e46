package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/workup/datenorm/internal/model"
	"github.com/workup/datenorm/internal/normalize"
)

// Locale holds the words the free-text date matcher understands.
type Locale struct {
	Months      []string `yaml:"months"`      // twelve prefixes, January first
	Connectives []string `yaml:"connectives"` // ignored words, e.g. "de"
}

// Config holds all runtime configuration for a datenorm run.
type Config struct {
	DSN           string
	FilePath      string
	LogFormat     string // "text" or "json"
	LogLevel      string
	Force         bool
	ReferenceYear int      // year for dates written without one; 0 = current year
	Kinds         []string `yaml:"kinds"` // subset of model.AllKinds to load
	Locale        Locale   `yaml:"locale"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Kinds         []string `yaml:"kinds"`
	ReferenceYear int      `yaml:"reference_year"`
	Locale        Locale   `yaml:"locale"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// A reference year already set (from a flag) takes precedence over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Kinds = yc.Kinds
	c.Locale = yc.Locale
	if c.ReferenceYear == 0 {
		c.ReferenceYear = yc.ReferenceYear
	}
	return c.Prepare()
}

// Prepare validates kinds, locale and reference year, filling defaults for
// anything left empty.
func (c *Config) Prepare() error {
	if err := c.validateKinds(); err != nil {
		return err
	}
	if err := c.validateLocale(); err != nil {
		return err
	}
	if c.ReferenceYear < 0 || c.ReferenceYear > 9999 {
		return fmt.Errorf("reference year %d out of range", c.ReferenceYear)
	}
	return nil
}

// validateKinds checks that every entry in Kinds is a known kind name.
// If Kinds is empty, it defaults to all model.AllKinds names.
func (c *Config) validateKinds() error {
	if len(c.Kinds) == 0 {
		c.Kinds = model.KindNames()
		return nil
	}
	for i, name := range c.Kinds {
		k, ok := model.KindByName(name)
		if !ok {
			return fmt.Errorf("unknown kind %q in config", name)
		}
		c.Kinds[i] = k.Name
	}
	return nil
}

func (c *Config) validateLocale() error {
	switch len(c.Locale.Months) {
	case 0:
		c.Locale.Months = normalize.DefaultMonths
	case 12:
		for i, m := range c.Locale.Months {
			if normalize.FoldText(m) == "" {
				return fmt.Errorf("locale month %d is empty", i+1)
			}
		}
	default:
		return fmt.Errorf("locale needs 12 months, got %d", len(c.Locale.Months))
	}
	if c.Locale.Connectives == nil {
		c.Locale.Connectives = normalize.DefaultConnectives
	}
	return nil
}

// KindSelected reports whether records of the given kind should be loaded.
func (c *Config) KindSelected(kind string) bool {
	for _, k := range c.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ResolveReferenceYear returns the configured reference year, or now's year
// when none was set.
func (c *Config) ResolveReferenceYear(now time.Time) int {
	if c.ReferenceYear > 0 {
		return c.ReferenceYear
	}
	return now.Year()
}

// NewParser builds a date parser for the configured locale.
func (c *Config) NewParser(log zerolog.Logger) *normalize.Parser {
	return normalize.NewParser(
		normalize.WithMonths(c.Locale.Months),
		normalize.WithConnectives(c.Locale.Connectives...),
		normalize.WithLogger(log),
	)
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATENORM_DB_URL is required")
	}
	return nil
}
