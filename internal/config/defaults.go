package config

import (
	"time"

	"github.com/jdkbench/jdkmig/internal/scrape"
)

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	kw := scrape.DefaultKeywords()
	return &Config{
		GitHub: GitHubConfig{
			APIURL:            "https://api.github.com",
			RequestInterval:   5 * time.Second,
			MinStars:          10000,
			PerPage:           100,
			MinFunctionLength: scrape.DefaultMinFunctionLength,
		},
		LLM: LLMConfig{
			Provider:  "mistral",
			Model:     "codestral-latest",
			MaxTokens: 2048,
			Retries:   2,
			Workers:   1,
		},
		Paths: PathsConfig{
			DataDir:   "data",
			OutputDir: "outputs",
			CacheDir:  ".jdkmig/cache",
		},
		Analysis: AnalysisConfig{
			Java8:     kw.Java8,
			Java11:    kw.Java11,
			Migration: kw.Migration,
		},
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	return &Config{
		GitHub:   mergeGitHubConfig(loaded.GitHub, defaults.GitHub),
		LLM:      mergeLLMConfig(loaded.LLM, defaults.LLM),
		Paths:    mergePathsConfig(loaded.Paths, defaults.Paths),
		Analysis: mergeAnalysisConfig(loaded.Analysis, defaults.Analysis),
		// Artifact settings have no defaults; the environment fills gaps.
		Artifact: loaded.Artifact,
		Output:   OutputConfig{Format: pickString(loaded.Output.Format, defaults.Output.Format)},
	}
}

func pickString(loaded, def string) string {
	if loaded != "" {
		return loaded
	}
	return def
}

func pickInt(loaded, def int) int {
	if loaded != 0 {
		return loaded
	}
	return def
}

func pickList(loaded, def []string) []string {
	if len(loaded) > 0 {
		return loaded
	}
	return def
}

func mergeGitHubConfig(loaded, defaults GitHubConfig) GitHubConfig {
	result := GitHubConfig{
		APIURL:            pickString(loaded.APIURL, defaults.APIURL),
		MinStars:          pickInt(loaded.MinStars, defaults.MinStars),
		PerPage:           pickInt(loaded.PerPage, defaults.PerPage),
		MinFunctionLength: pickInt(loaded.MinFunctionLength, defaults.MinFunctionLength),
	}

	// RequestInterval: zero means unset; a negative value is kept so
	// Validate can reject it.
	if loaded.RequestInterval != 0 {
		result.RequestInterval = loaded.RequestInterval
	} else {
		result.RequestInterval = defaults.RequestInterval
	}
	return result
}

func mergeLLMConfig(loaded, defaults LLMConfig) LLMConfig {
	result := LLMConfig{
		Provider:  pickString(loaded.Provider, defaults.Provider),
		MaxTokens: pickInt(loaded.MaxTokens, defaults.MaxTokens),
		Retries:   pickInt(loaded.Retries, defaults.Retries),
		Workers:   pickInt(loaded.Workers, defaults.Workers),
		RPS:       loaded.RPS,
	}

	// Model defaults only apply to the default provider.
	if loaded.Model != "" {
		result.Model = loaded.Model
	} else if result.Provider == defaults.Provider {
		result.Model = defaults.Model
	}
	return result
}

func mergePathsConfig(loaded, defaults PathsConfig) PathsConfig {
	return PathsConfig{
		DataDir:   pickString(loaded.DataDir, defaults.DataDir),
		OutputDir: pickString(loaded.OutputDir, defaults.OutputDir),
		CacheDir:  pickString(loaded.CacheDir, defaults.CacheDir),
	}
}

func mergeAnalysisConfig(loaded, defaults AnalysisConfig) AnalysisConfig {
	return AnalysisConfig{
		Java8:     pickList(loaded.Java8, defaults.Java8),
		Java11:    pickList(loaded.Java11, defaults.Java11),
		Migration: pickList(loaded.Migration, defaults.Migration),
	}
}

// ValidFormats lists the valid values for output format
var ValidFormats = []string{"yaml", "json"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}

// ValidProviders lists the supported model providers
var ValidProviders = []string{"mistral", "gemini", "fake"}

// IsValidProvider checks if the given provider is supported
func IsValidProvider(provider string) bool {
	for _, valid := range ValidProviders {
		if provider == valid {
			return true
		}
	}
	return false
}
