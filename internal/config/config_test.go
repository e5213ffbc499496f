package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.MinStars != 10000 {
		t.Errorf("expected min_stars 10000, got %d", cfg.GitHub.MinStars)
	}
	if cfg.GitHub.PerPage != 100 {
		t.Errorf("expected per_page 100, got %d", cfg.GitHub.PerPage)
	}
	if cfg.GitHub.MinFunctionLength != 10 {
		t.Errorf("expected min_function_length 10, got %d", cfg.GitHub.MinFunctionLength)
	}
	if cfg.LLM.Provider != "mistral" || cfg.LLM.Model != "codestral-latest" {
		t.Errorf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if len(cfg.Analysis.Migration) == 0 {
		t.Error("expected default migration keywords")
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("expected format yaml, got %s", cfg.Output.Format)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"yaml", true},
		{"json", true},
		{"csv", false},
		{"", false},
		{"YAML", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := IsValidFormat(tt.format); got != tt.valid {
				t.Errorf("IsValidFormat(%q) = %v, want %v", tt.format, got, tt.valid)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"json output", func(c *Config) { c.Output.Format = "json" }, false},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"negative interval", func(c *Config) { c.GitHub.RequestInterval = -time.Second }, true},
		{"zero interval", func(c *Config) { c.GitHub.RequestInterval = 0 }, false},
		{"per_page too large", func(c *Config) { c.GitHub.PerPage = 101 }, true},
		{"per_page zero", func(c *Config) { c.GitHub.PerPage = 0 }, true},
		{"min length zero", func(c *Config) { c.GitHub.MinFunctionLength = 0 }, true},
		{"gemini provider", func(c *Config) { c.LLM.Provider = "gemini" }, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "openai" }, true},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }, true},
		{"negative workers", func(c *Config) { c.LLM.Workers = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	defaults := DefaultConfig()

	t.Run("empty loaded config uses defaults", func(t *testing.T) {
		merged := Merge(&Config{}, defaults)
		if merged.GitHub.MinStars != defaults.GitHub.MinStars {
			t.Errorf("expected default min_stars, got %d", merged.GitHub.MinStars)
		}
		if merged.GitHub.RequestInterval != defaults.GitHub.RequestInterval {
			t.Errorf("expected default interval, got %s", merged.GitHub.RequestInterval)
		}
		if merged.Paths.CacheDir != defaults.Paths.CacheDir {
			t.Errorf("expected default cache dir, got %s", merged.Paths.CacheDir)
		}
	})

	t.Run("loaded values override defaults", func(t *testing.T) {
		loaded := &Config{
			GitHub:   GitHubConfig{MinStars: 500, RequestInterval: time.Second},
			Analysis: AnalysisConfig{Java8: []string{"jre8"}},
			Output:   OutputConfig{Format: "json"},
		}
		merged := Merge(loaded, defaults)
		if merged.GitHub.MinStars != 500 {
			t.Errorf("expected min_stars 500, got %d", merged.GitHub.MinStars)
		}
		if merged.GitHub.RequestInterval != time.Second {
			t.Errorf("expected 1s interval, got %s", merged.GitHub.RequestInterval)
		}
		if merged.GitHub.PerPage != 100 {
			t.Errorf("expected default per_page, got %d", merged.GitHub.PerPage)
		}
		if len(merged.Analysis.Java8) != 1 || merged.Analysis.Java8[0] != "jre8" {
			t.Errorf("expected java8 override, got %v", merged.Analysis.Java8)
		}
		if len(merged.Analysis.Java11) != len(defaults.Analysis.Java11) {
			t.Errorf("expected default java11 list, got %v", merged.Analysis.Java11)
		}
		if merged.Output.Format != "json" {
			t.Errorf("expected format json, got %s", merged.Output.Format)
		}
	})

	t.Run("model default only for default provider", func(t *testing.T) {
		merged := Merge(&Config{LLM: LLMConfig{Provider: "gemini"}}, defaults)
		if merged.LLM.Model != "" {
			t.Errorf("expected empty model for gemini, got %q", merged.LLM.Model)
		}
		merged = Merge(&Config{LLM: LLMConfig{Provider: "gemini", Model: "gemini-1.5-pro"}}, defaults)
		if merged.LLM.Model != "gemini-1.5-pro" {
			t.Errorf("expected explicit model, got %q", merged.LLM.Model)
		}
	})
}

func TestFindConfigDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("returns error when no config dir exists", func(t *testing.T) {
		_, err := FindConfigDir(tmpDir)
		if err != ErrConfigNotFound {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	configDir := filepath.Join(tmpDir, ConfigDirName)
	if err := os.Mkdir(configDir, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("finds config dir in current directory", func(t *testing.T) {
		found, err := FindConfigDir(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if found != configDir {
			t.Errorf("expected %s, got %s", configDir, found)
		}
	})

	t.Run("finds config dir in parent directory", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "data", "repos")
		if err := os.MkdirAll(subDir, 0755); err != nil {
			t.Fatal(err)
		}
		found, err := FindConfigDir(subDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if found != configDir {
			t.Errorf("expected %s, got %s", configDir, found)
		}
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir := t.TempDir()

	configDir, err := EnsureConfigDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if configDir != filepath.Join(tmpDir, ConfigDirName) {
		t.Errorf("unexpected config dir %s", configDir)
	}
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		t.Errorf("config dir was not created: %v", err)
	}

	// Second call is a no-op.
	if _, err := EnsureConfigDir(tmpDir); err != nil {
		t.Errorf("unexpected error on existing dir: %v", err)
	}

	fileDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(fileDir, ConfigDirName), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureConfigDir(fileDir); err == nil {
		t.Error("expected error when .jdkmig is a file")
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("loads valid config file", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		content := `
github:
  min_stars: 2000
  request_interval: 250ms
llm:
  provider: gemini
  model: gemini-2.0-flash
  workers: 4
analysis:
  migration: [migrate, bump]
output:
  format: json
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GitHub.MinStars != 2000 {
			t.Errorf("expected min_stars 2000, got %d", cfg.GitHub.MinStars)
		}
		if cfg.GitHub.RequestInterval != 250*time.Millisecond {
			t.Errorf("expected 250ms interval, got %s", cfg.GitHub.RequestInterval)
		}
		if cfg.LLM.Provider != "gemini" || cfg.LLM.Workers != 4 {
			t.Errorf("unexpected llm config %+v", cfg.LLM)
		}
		if len(cfg.Analysis.Migration) != 2 {
			t.Errorf("expected 2 migration keywords, got %v", cfg.Analysis.Migration)
		}

		// Defaults fill the rest.
		if cfg.GitHub.PerPage != 100 {
			t.Errorf("expected default per_page, got %d", cfg.GitHub.PerPage)
		}
		if cfg.Paths.DataDir != "data" {
			t.Errorf("expected default data dir, got %s", cfg.Paths.DataDir)
		}
	})

	t.Run("returns defaults for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(tmpDir, "nonexistent.yaml"))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if cfg.Output.Format != "yaml" {
			t.Errorf("expected default format, got %s", cfg.Output.Format)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("invalid: yaml: content"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromPath(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid values", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "bad-values.yaml")
		if err := os.WriteFile(configPath, []byte("llm:\n  provider: openai\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFromPath(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config dir", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GitHub.MinStars != 10000 {
			t.Errorf("expected defaults, got %+v", cfg.GitHub)
		}
	})

	t.Run("loads config from parent directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ConfigDirName)
		if err := os.Mkdir(configDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte("github:\n  min_stars: 42\n"), 0644); err != nil {
			t.Fatal(err)
		}
		sub := filepath.Join(root, "outputs")
		if err := os.Mkdir(sub, 0755); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(sub)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GitHub.MinStars != 42 {
			t.Errorf("expected min_stars 42, got %d", cfg.GitHub.MinStars)
		}
	})
}

func TestSaveDefault(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := SaveDefault(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# jdkmig configuration") {
		t.Errorf("missing header: %q", string(data)[:40])
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("saved config should load: %v", err)
	}
	if cfg.GitHub.RequestInterval != DefaultConfig().GitHub.RequestInterval {
		t.Errorf("interval did not round-trip: %s", cfg.GitHub.RequestInterval)
	}

	if _, err := SaveDefault(tmpDir); err == nil {
		t.Error("expected error when config already exists")
	}
}
