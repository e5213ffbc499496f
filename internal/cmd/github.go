package cmd

import (
	"github.com/jdkbench/jdkmig/internal/config"
	"github.com/jdkbench/jdkmig/internal/github"
)

// newGitHubClient builds a throttled client. blobs may be nil.
func newGitHubClient(cfg *config.Config, secrets *config.Secrets, blobs github.BlobCache) *github.Client {
	return github.New(github.Options{
		BaseURL:  cfg.GitHub.APIURL,
		Token:    secrets.GitHubToken,
		Interval: cfg.GitHub.RequestInterval,
		Cache:    blobs,
	})
}
