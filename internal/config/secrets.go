package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileName is the dotenv file read for secrets.
const EnvFileName = ".env"

// Secrets holds credentials kept out of config.yaml.
type Secrets struct {
	GitHubToken string
	MistralKey  string
	GeminiKey   string

	values map[string]string
}

// Get returns a secret by variable name, for settings without a field.
func (s *Secrets) Get(key string) string {
	return s.values[key]
}

// Getenv returns a lookup over the loaded values, for constructors that
// take an environment function.
func (s *Secrets) Getenv() func(string) string {
	return s.Get
}

// APIKey returns the key for an LLM provider.
func (s *Secrets) APIKey(provider string) string {
	switch provider {
	case "gemini":
		return s.GeminiKey
	case "mistral":
		return s.MistralKey
	}
	return ""
}

// secretKeys are the variables collected from the environment.
var secretKeys = []string{
	"GITHUB_TOKEN", "MISTRAL_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	"ARTIFACT_S3_ENDPOINT", "ARTIFACT_S3_REGION", "ARTIFACT_S3_ACCESS_KEY",
	"ARTIFACT_S3_SECRET_KEY", "ARTIFACT_S3_BUCKET", "ARTIFACT_S3_PREFIX",
	"ARTIFACT_S3_USE_SSL", "MINIO_ROOT_USER", "MINIO_ROOT_PASSWORD",
}

// LoadSecrets reads secrets from the process environment, then fills gaps
// from a .env file in dir or in the parent of its .jdkmig directory. The
// environment is never modified.
func LoadSecrets(dir string) (*Secrets, error) {
	values := make(map[string]string)
	for _, k := range secretKeys {
		if v := os.Getenv(k); v != "" {
			values[k] = v
		}
	}

	for _, path := range envFileCandidates(dir) {
		fileVals, err := godotenv.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range fileVals {
			if _, ok := values[k]; !ok && v != "" {
				values[k] = v
			}
		}
		break
	}

	s := &Secrets{
		GitHubToken: values["GITHUB_TOKEN"],
		MistralKey:  values["MISTRAL_API_KEY"],
		GeminiKey:   values["GEMINI_API_KEY"],
		values:      values,
	}
	if s.GeminiKey == "" {
		s.GeminiKey = values["GOOGLE_API_KEY"]
	}
	return s, nil
}

func envFileCandidates(dir string) []string {
	paths := []string{filepath.Join(dir, EnvFileName)}
	if cfgDir, err := FindConfigDir(dir); err == nil {
		root := filepath.Dir(cfgDir)
		if p := filepath.Join(root, EnvFileName); p != paths[0] {
			paths = append(paths, p)
		}
	}
	return paths
}
