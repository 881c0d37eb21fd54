// Package config loads the outline host configuration from YAML with environment
// variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig = "OUTLINE_CONFIG"
	EnvHome   = "OUTLINE_HOME"

	GlyphsUnicode = "unicode"
	GlyphsASCII   = "ascii"

	// StoreMemory selects the in-process pane store.
	StoreMemory = "memory"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Outline OutlineConfig `yaml:"outline"`
	UI      UIConfig      `yaml:"ui"`
	Store   StoreConfig   `yaml:"store"`
}

func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Outline.Validate(); err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output. Empty means stderr for commands and Dir()/outline.log for the TUI.
	File string `yaml:"file"`
}

func (c *LogConfig) Validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
	)
}

type OutlineConfig struct {
	VirtualizeThreshold int `yaml:"virtualizeThreshold"`
	Overscan            int `yaml:"overscan"`
	DefaultExpandDepth  int `yaml:"defaultExpandDepth"`
}

func (c *OutlineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.VirtualizeThreshold, validation.Required, validation.Min(1)),
		validation.Field(&c.Overscan, validation.Min(0)),
		validation.Field(&c.DefaultExpandDepth, validation.Min(0), validation.Max(8)),
	)
}

type UIConfig struct {
	Glyphs    string `yaml:"glyphs"`
	PaneWidth int    `yaml:"paneWidth"`
}

func (c *UIConfig) Validate() error {
	if c.Glyphs == "" {
		c.Glyphs = GlyphsUnicode
	}
	c.Glyphs = strings.ToLower(strings.TrimSpace(c.Glyphs))
	return validation.ValidateStruct(c,
		validation.Field(&c.Glyphs, validation.In(GlyphsUnicode, GlyphsASCII)),
		validation.Field(&c.PaneWidth, validation.Required, validation.Min(20), validation.Max(200)),
	)
}

type StoreConfig struct {
	// Path of the SQLite pane store, or "memory".
	Path string `yaml:"path"`
}

// Dir is the outline home directory: $OUTLINE_HOME, else ~/.outline.
func Dir() string {
	if v := strings.TrimSpace(os.Getenv(EnvHome)); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".outline"
	}
	return filepath.Join(home, ".outline")
}

// DefaultPath is $OUTLINE_CONFIG, else Dir()/config.yaml.
func DefaultPath() string {
	if v := strings.TrimSpace(os.Getenv(EnvConfig)); v != "" {
		return v
	}
	return filepath.Join(Dir(), "config.yaml")
}

func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Outline: OutlineConfig{
			VirtualizeThreshold: 200,
			Overscan:            6,
			DefaultExpandDepth:  1,
		},
		UI: UIConfig{
			Glyphs:    GlyphsUnicode,
			PaneWidth: 48,
		},
		Store: StoreConfig{
			Path: filepath.Join(Dir(), "state.sqlite"),
		},
	}
}

// Load reads path (DefaultPath when empty) over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	cfg := NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse expands environment variables in data, decodes it into cfg and validates.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
