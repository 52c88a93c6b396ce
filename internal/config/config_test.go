package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DocsDir != "docs" {
		t.Errorf("expected default docs_dir %q, got %q", "docs", cfg.DocsDir)
	}
	if cfg.TOC.MinHeadings != 3 {
		t.Errorf("expected default toc.min_headings 3, got %d", cfg.TOC.MinHeadings)
	}
	if cfg.Interact.CopyReset != 2*time.Second {
		t.Errorf("expected default copy_reset 2s, got %s", cfg.Interact.CopyReset)
	}
	if cfg.Interact.DeepLinkDelay != 100*time.Millisecond {
		t.Errorf("expected default deep_link_delay 100ms, got %s", cfg.Interact.DeepLinkDelay)
	}
	if cfg.Highlight.Style != "github" {
		t.Errorf("expected default style github, got %q", cfg.Highlight.Style)
	}
}

func TestDefaultConfigDoesNotShareExcludes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude[0] = "changed"
	if DefaultExcludes[0] == "changed" {
		t.Error("DefaultConfig aliases DefaultExcludes")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docpage.yml")

	original := DefaultConfig()
	original.BasePath = "/handbook"
	original.Port = 9090
	original.Include = []string{"guides/**/*.md"}
	original.Exclude = []string{"drafts/**"}
	original.Highlight.ExtraGrammars = []string{"go", "python"}
	original.Interact.CopyReset = 5 * time.Second

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.BasePath != original.BasePath {
		t.Errorf("base_path: got %q, want %q", loaded.BasePath, original.BasePath)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Interact.CopyReset != original.Interact.CopyReset {
		t.Errorf("copy_reset: got %s, want %s", loaded.Interact.CopyReset, original.Interact.CopyReset)
	}
	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "drafts/**" {
		t.Errorf("exclude: got %v, want [drafts/**]", loaded.Exclude)
	}
	if len(loaded.Highlight.ExtraGrammars) != 2 {
		t.Errorf("extra_grammars: got %v", loaded.Highlight.ExtraGrammars)
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadHumanDurations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "d.yml")
	data := "interact:\n  copy_reset: 3s\n  deep_link_delay: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Interact.CopyReset != 3*time.Second {
		t.Errorf("copy_reset: got %s", cfg.Interact.CopyReset)
	}
	if cfg.Interact.DeepLinkDelay != 250*time.Millisecond {
		t.Errorf("deep_link_delay: got %s", cfg.Interact.DeepLinkDelay)
	}
	if cfg.TOC.MinHeadings != 3 {
		t.Errorf("unset keys should keep defaults, got min_headings %d", cfg.TOC.MinHeadings)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("DOCPAGE_PORT", "7070")
	t.Setenv("DOCPAGE_TOC__MIN_HEADINGS", "5")
	t.Setenv("DOCPAGE_HIGHLIGHT__STYLE", "monokai")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 7070 {
		t.Errorf("env override failed: got port %d, want 7070", loaded.Port)
	}
	if loaded.TOC.MinHeadings != 5 {
		t.Errorf("nested env override failed: got %d, want 5", loaded.TOC.MinHeadings)
	}
	if loaded.Highlight.Style != "monokai" {
		t.Errorf("nested env override failed: got %q", loaded.Highlight.Style)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DOCPAGE_PORT":                      "port",
		"DOCPAGE_DOCS_DIR":                  "docs_dir",
		"DOCPAGE_INTERACT__COPY_RESET":      "interact.copy_reset",
		"DOCPAGE_SERVER__ALLOW_ALL_ORIGINS": "server.allow_all_origins",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no source", func(c *Config) { c.DocsDir = "" }},
		{"relative origin", func(c *Config) { c.Origin = "docs.example.com" }},
		{"ftp origin", func(c *Config) { c.Origin = "ftp://docs.example.com" }},
		{"port range", func(c *Config) { c.Port = 70000 }},
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"empty style", func(c *Config) { c.Highlight.Style = "" }},
		{"toc minimum", func(c *Config) { c.TOC.MinHeadings = 0 }},
		{"copy reset", func(c *Config) { c.Interact.CopyReset = -time.Second }},
		{"deep link delay", func(c *Config) { c.Interact.DeepLinkDelay = -time.Millisecond }},
		{"zero copy reset", func(c *Config) { c.Interact.CopyReset = 0 }},
		{"zero deep link delay", func(c *Config) { c.Interact.DeepLinkDelay = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateOriginWithoutDocsDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DocsDir = ""
	cfg.Origin = "https://docs.example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("origin alone should be valid, got: %v", err)
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"8080", " 443 "} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "http", "0", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q): expected error", s)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
