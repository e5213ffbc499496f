package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/scrape"
	"github.com/spf13/cobra"
)

var gatherCmd = &cobra.Command{
	Use:   "gather",
	Short: "Collect popular Java repository names",
	Long: `Search GitHub for Java repositories above the configured star count,
most forked first, and save their full names for 'jdkmig analyse'.

Examples:
  jdkmig gather
  jdkmig gather --min-stars 5000 -o repos.json`,
	Args: cobra.NoArgs,
	RunE: runGather,
}

var (
	gatherMinStars int
	gatherOut      string
)

func init() {
	rootCmd.AddCommand(gatherCmd)
	gatherCmd.Flags().IntVar(&gatherMinStars, "min-stars", 0, "Minimum star count (default from config)")
	gatherCmd.Flags().StringVarP(&gatherOut, "out", "o", "", "Output file (default: <data_dir>/repo_names.json)")
}

func runGather(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	secrets, err := loadSecrets()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	minStars := cfg.GitHub.MinStars
	if gatherMinStars > 0 {
		minStars = gatherMinStars
	}

	client := newGitHubClient(cfg, secrets, nil)
	res, err := client.SearchJavaRepos(ctx, minStars, cfg.GitHub.PerPage)
	if err != nil {
		return fmt.Errorf("search repositories: %w", err)
	}
	names := res.RepoNames()

	out := gatherOut
	if out == "" {
		dir, err := ensureDir(cfg.Paths.DataDir)
		if err != nil {
			return err
		}
		out = filepath.Join(dir, "repo_names.json")
	}
	if err := scrape.SaveRepoNames(out, names); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d of %d repositories to %s\n", len(names), res.TotalCount, out)
	return nil
}
