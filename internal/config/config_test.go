package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Outline.VirtualizeThreshold != 200 || cfg.Outline.Overscan != 6 || cfg.Outline.DefaultExpandDepth != 1 {
		t.Fatalf("unexpected outline defaults: %+v", cfg.Outline)
	}
	if cfg.UI.Glyphs != GlyphsUnicode || cfg.UI.PaneWidth != 48 {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
}

func TestLoad_ExpandsEnvAndOverridesDefaults(t *testing.T) {
	t.Setenv("OUTLINE_TEST_STORE", "/tmp/outline-test.sqlite")

	p := filepath.Join(t.TempDir(), "config.yaml")
	body := `
log:
  level: DEBUG
outline:
  overscan: 0
  defaultExpandDepth: 3
ui:
  glyphs: ascii
store:
  path: ${OUTLINE_TEST_STORE}
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Outline.Overscan != 0 || cfg.Outline.DefaultExpandDepth != 3 || cfg.Outline.VirtualizeThreshold != 200 {
		t.Errorf("unexpected outline config: %+v", cfg.Outline)
	}
	if cfg.UI.Glyphs != GlyphsASCII || cfg.UI.PaneWidth != 48 {
		t.Errorf("unexpected ui config: %+v", cfg.UI)
	}
	if cfg.Store.Path != "/tmp/outline-test.sqlite" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad level", body: "log: {level: loud}", want: "log"},
		{name: "threshold", body: "outline: {virtualizeThreshold: -1}", want: "outline"},
		{name: "overscan", body: "outline: {overscan: -2}", want: "outline"},
		{name: "depth", body: "outline: {defaultExpandDepth: 9}", want: "outline"},
		{name: "glyphs", body: "ui: {glyphs: emoji}", want: "ui"},
		{name: "pane width", body: "ui: {paneWidth: 500}", want: "ui"},
		{name: "syntax", body: "outline: [", want: "parse"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := Parse([]byte(tt.body), NewDefaultConfig())
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/outline.yaml")
	if got := DefaultPath(); got != "/etc/outline.yaml" {
		t.Fatalf("expected env override, got %q", got)
	}

	t.Setenv(EnvConfig, "")
	t.Setenv(EnvHome, "/srv/outline")
	if got := DefaultPath(); got != filepath.Join("/srv/outline", "config.yaml") {
		t.Fatalf("expected home-based path, got %q", got)
	}
}
