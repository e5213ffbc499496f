// Package config loads the jdkmig configuration file and secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jdkbench/jdkmig/internal/scrape"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the configuration directory
const ConfigDirName = ".jdkmig"

// Config holds all jdkmig configuration
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	LLM      LLMConfig      `yaml:"llm"`
	Paths    PathsConfig    `yaml:"paths"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Artifact ArtifactConfig `yaml:"artifact"`
	Output   OutputConfig   `yaml:"output"`
}

// GitHubConfig holds settings for the GitHub REST client and the scraper
type GitHubConfig struct {
	APIURL            string        `yaml:"api_url"`
	RequestInterval   time.Duration `yaml:"request_interval"`
	MinStars          int           `yaml:"min_stars"`
	PerPage           int           `yaml:"per_page"`
	MinFunctionLength int           `yaml:"min_function_length"`
}

// LLMConfig selects the migration model
type LLMConfig struct {
	Provider  string  `yaml:"provider"`
	Model     string  `yaml:"model"`
	MaxTokens int     `yaml:"max_tokens"`
	RPS       float64 `yaml:"rps"`
	Retries   int     `yaml:"retries"`
	Workers   int     `yaml:"workers"`
}

// PathsConfig holds where inputs and outputs live
type PathsConfig struct {
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`
	CacheDir  string `yaml:"cache_dir"`
}

// AnalysisConfig holds the keyword lists used to flag migration activity
type AnalysisConfig struct {
	Java8     []string `yaml:"java8"`
	Java11    []string `yaml:"java11"`
	Migration []string `yaml:"migration"`
}

// ArtifactConfig holds the non-secret object storage settings
type ArtifactConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	UseSSL   bool   `yaml:"use_ssl"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	Format string `yaml:"format"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .jdkmig/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir locates the .jdkmig directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .jdkmig directory if it doesn't exist.
// Returns the path to the .jdkmig directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return configDir, nil
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if !IsValidFormat(cfg.Output.Format) {
		return fmt.Errorf("%w: output format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.Format)
	}

	if cfg.GitHub.RequestInterval < 0 {
		return fmt.Errorf("%w: request_interval must be non-negative, got %s",
			ErrInvalidConfig, cfg.GitHub.RequestInterval)
	}

	if cfg.GitHub.PerPage <= 0 || cfg.GitHub.PerPage > 100 {
		return fmt.Errorf("%w: per_page must be between 1 and 100, got %d",
			ErrInvalidConfig, cfg.GitHub.PerPage)
	}

	if cfg.GitHub.MinFunctionLength < 1 {
		return fmt.Errorf("%w: min_function_length must be positive, got %d",
			ErrInvalidConfig, cfg.GitHub.MinFunctionLength)
	}

	if !IsValidProvider(cfg.LLM.Provider) {
		return fmt.Errorf("%w: llm provider must be one of %v, got %q",
			ErrInvalidConfig, ValidProviders, cfg.LLM.Provider)
	}

	if cfg.LLM.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive, got %d",
			ErrInvalidConfig, cfg.LLM.MaxTokens)
	}

	if cfg.LLM.RPS < 0 || cfg.LLM.Retries < 0 || cfg.LLM.Workers < 0 {
		return fmt.Errorf("%w: llm rps, retries and workers must be non-negative",
			ErrInvalidConfig)
	}

	return nil
}

// SaveDefault writes the default configuration to .jdkmig/config.yaml in
// workDir. Creates the .jdkmig directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# jdkmig configuration\n# Secrets (GITHUB_TOKEN, MISTRAL_API_KEY, GEMINI_API_KEY, ARTIFACT_S3_*) belong in .env\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return configPath, nil
}

// Keywords returns the analysis lists in the form the analyzer takes.
func (a AnalysisConfig) Keywords() scrape.Keywords {
	return scrape.Keywords{Java8: a.Java8, Java11: a.Java11, Migration: a.Migration}
}
