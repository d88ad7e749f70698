package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/sitegrade/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default target is the local development server", func(t *testing.T) {
		t.Parallel()
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "http://localhost:3000" {
			t.Errorf("expected [http://localhost:3000], got %v", cfg.Targets)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default MaxBodySize is 5MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize to be 5MB, got %d", cfg.MaxBodySize)
		}
	})

	t.Run("checks are shown by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.ShowChecks {
			t.Error("expected ShowChecks to be true")
		}
	})

	t.Run("history is not saved by default", func(t *testing.T) {
		t.Parallel()
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false")
		}
		if cfg.DBDir == "" {
			t.Error("expected DBDir to default to the XDG data directory")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		return &Config{
			Targets:   []string{"http://localhost:3000"},
			Timeout:   30 * time.Second,
			BatchSize: 4,
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"valid config returns nil", func(*Config) {}, nil},
		{"multiple targets is valid", func(c *Config) { c.Targets = []string{"http://a", "http://b"} }, nil},
		{"empty targets returns ErrNoTarget", func(c *Config) { c.Targets = []string{} }, ErrNoTarget},
		{"nil targets returns ErrNoTarget", func(c *Config) { c.Targets = nil }, ErrNoTarget},
		{"zero timeout returns ErrInvalidTimeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative timeout returns ErrInvalidTimeout", func(c *Config) { c.Timeout = -time.Second }, ErrInvalidTimeout},
		{"zero batch size returns ErrInvalidBatchSize", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"json and markdown returns ErrConflictingReportFormats", func(c *Config) {
			c.JSONReport = true
			c.MarkdownReport = true
		}, ErrConflictingReportFormats},
		{"json only is valid", func(c *Config) { c.JSONReport = true }, nil},
		{"markdown only is valid", func(c *Config) { c.MarkdownReport = true }, nil},
		{"negative body size returns ErrInvalidMaxBodySize", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"save without dir returns ErrNoDBDir", func(c *Config) { c.SaveToDB = true }, ErrNoDBDir},
		{"save with dir is valid", func(c *Config) {
			c.SaveToDB = true
			c.DBDir = "/tmp/sitegrade"
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), ".sitegrade")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		return path
	}

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.sitegrade")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads rules", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `rules:
  content:
    - label: Blog
      pattern: blog
      match: substring_fold
      weight: 4
    - label: Hero section
      all:
        - pattern: "<header"
        - pattern: hero
          match: substring_fold
      weight: 3
      missing: No hero section
  presentation:
    - label: Layout
      pattern: "grid|flex"
      match: regex
      weight: 5
`)

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content := cf.Rules.Content
		if len(content) != 2 {
			t.Fatalf("expected 2 content rules, got %d", len(content))
		}
		if content[0].Label != "Blog" || content[0].Pattern != "blog" ||
			content[0].Match != model.MatchSubstringFold || content[0].Weight != 4 {
			t.Errorf("unexpected first rule: %+v", content[0])
		}
		if len(content[1].All) != 2 || content[1].All[1].Match != model.MatchSubstringFold {
			t.Errorf("unexpected compound rule: %+v", content[1])
		}
		if content[1].MissingText() != "No hero section" {
			t.Errorf("unexpected missing text %q", content[1].MissingText())
		}
		if len(cf.Rules.Presentation) != 1 || cf.Rules.Presentation[0].Match != model.MatchRegex {
			t.Errorf("unexpected presentation rules: %+v", cf.Rules.Presentation)
		}
		if len(cf.Rules.Technical) != 0 {
			t.Errorf("expected no technical rules, got %d", len(cf.Rules.Technical))
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "rules: [unclosed")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns ErrInvalidRule for bad regex", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `rules:
  ux:
    - label: Broken
      pattern: "("
      match: regex
      weight: 1
`)
		_, err := LoadConfigFile(path)
		if !errors.Is(err, model.ErrInvalidRule) {
			t.Errorf("expected ErrInvalidRule, got %v", err)
		}
	})

	t.Run("returns ErrInvalidRule for unknown match kind", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `rules:
  ux:
    - label: Glob
      pattern: "*.js"
      match: glob
      weight: 1
`)
		_, err := LoadConfigFile(path)
		if !errors.Is(err, model.ErrInvalidRule) {
			t.Errorf("expected ErrInvalidRule, got %v", err)
		}
	})

	t.Run("empty file is valid", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cf.Rules.IsEmpty() {
			t.Error("expected no rules")
		}
	})
}

// TestFileApplyTo tests overriding built-in rules with file rules.
func TestFileApplyTo(t *testing.T) {
	t.Parallel()

	base := model.RuleSet{
		Technical: []model.CheckRule{model.Contains("a", "a", 1)},
		Content:   []model.CheckRule{model.Contains("b", "b", 1)},
	}

	t.Run("nil file keeps base", func(t *testing.T) {
		t.Parallel()

		var cf *File
		got := cf.ApplyTo(base)
		if len(got.Technical) != 1 || len(got.Content) != 1 {
			t.Errorf("expected base rules, got %+v", got)
		}
	})

	t.Run("file without rules keeps base", func(t *testing.T) {
		t.Parallel()

		got := (&File{}).ApplyTo(base)
		if len(got.Technical) != 1 || len(got.Content) != 1 {
			t.Errorf("expected base rules, got %+v", got)
		}
	})

	t.Run("named categories are replaced", func(t *testing.T) {
		t.Parallel()

		cf := &File{Rules: model.RuleSet{
			Content: []model.CheckRule{model.Contains("c", "c", 2), model.Contains("d", "d", 2)},
		}}
		got := cf.ApplyTo(base)
		if len(got.Content) != 2 || got.Content[0].Label != "c" {
			t.Errorf("expected replaced content rules, got %+v", got.Content)
		}
		if len(got.Technical) != 1 || got.Technical[0].Label != "a" {
			t.Errorf("expected technical rules untouched, got %+v", got.Technical)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("rules: {}\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if got := FindConfigFile("/nonexistent/custom.yaml"); got != "" {
			t.Errorf("expected empty path, got %s", got)
		}
	})

	t.Run("finds file in current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("HOME", t.TempDir())

		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("rules: {}\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("expected %s to be found, got %q", DefaultConfigFile, got)
		}
	})

	t.Run("explicit directory is not a config file", func(t *testing.T) {
		if got := FindConfigFile(t.TempDir()); got != "" {
			t.Errorf("expected empty path, got %s", got)
		}
	})
}

// TestSearchPaths tests the implicit lookup order.
func TestSearchPaths(t *testing.T) {
	t.Parallel()

	t.Run("ends with the XDG config file", func(t *testing.T) {
		t.Parallel()

		paths := searchPaths()
		want := filepath.Join(XDGConfigDir(), XDGConfigFile)
		if len(paths) == 0 || paths[len(paths)-1] != want {
			t.Errorf("expected %s last, got %v", want, paths)
		}
		if filepath.Base(paths[0]) != DefaultConfigFile {
			t.Errorf("expected %s first, got %s", DefaultConfigFile, paths[0])
		}
	})

	t.Run("first existing file wins", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		missing := filepath.Join(dir, "missing", DefaultConfigFile)
		xdgFile := filepath.Join(dir, XDGConfigFile)
		later := filepath.Join(dir, "later.yaml")
		for _, path := range []string{xdgFile, later} {
			if err := os.WriteFile(path, []byte("rules: {}\n"), 0600); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
		}

		if got := firstExisting([]string{missing, dir, xdgFile, later}); got != xdgFile {
			t.Errorf("expected %s, got %q", xdgFile, got)
		}
		if got := firstExisting([]string{missing}); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}

// TestXDGDirs tests the XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir ends with app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGDataDir()) != AppName {
			t.Errorf("expected data dir to end with %s, got %s", AppName, XDGDataDir())
		}
	})

	t.Run("XDGConfigDir ends with app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGConfigDir()) != AppName {
			t.Errorf("expected config dir to end with %s, got %s", AppName, XDGConfigDir())
		}
	})
}
