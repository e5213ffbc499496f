package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/scrape"
	"github.com/spf13/cobra"
)

var analyseCmd = &cobra.Command{
	Use:     "analyse",
	Aliases: []string{"analyze"},
	Short:   "Flag repositories whose activity mentions the migration",
	Long: `Read the first page of commits, open issues and releases of every
gathered repository and flag texts that mention Java 8, Java 11 and a
migration word together.

Flagged items are appended to a text log and per-repository counts to a
CSV. A rerun resumes after the last repository in the CSV.

Examples:
  jdkmig analyse
  jdkmig analyse --repos data/repo_names.json --restart`,
	Args: cobra.NoArgs,
	RunE: runAnalyse,
}

var (
	analyseRepos   string
	analyseRestart bool
)

func init() {
	rootCmd.AddCommand(analyseCmd)
	analyseCmd.Flags().StringVar(&analyseRepos, "repos", "", "Repository names file (default: <data_dir>/repo_names.json)")
	analyseCmd.Flags().BoolVar(&analyseRestart, "restart", false, "Ignore existing statistics and start from the first repository")
}

func runAnalyse(cmd *cobra.Command, args []string) error {
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

	reposPath := analyseRepos
	if reposPath == "" {
		reposPath = filepath.Join(resolvePath(cfg.Paths.DataDir), "repo_names.json")
	}
	names, err := scrape.LoadRepoNames(reposPath)
	if err != nil {
		return fmt.Errorf("load repositories (run 'jdkmig gather' first): %w", err)
	}

	outDir, err := ensureDir(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	statsPath := filepath.Join(outDir, "analysis_stats.csv")
	logPath := filepath.Join(outDir, "analysis_log.txt")

	if analyseRestart {
		for _, p := range []string{statsPath, logPath} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
	} else if last, ok, err := scrape.LastRepo(statsPath); err != nil {
		return err
	} else if ok {
		if names, err = scrape.ResumeAfter(names, last); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "resuming after %s\n", last)
	}

	analyzer := &scrape.Analyzer{
		Source:   newGitHubClient(cfg, secrets, nil),
		Keywords: cfg.Analysis.Keywords(),
	}
	logger := newLogger()

	var flagged, failed int
	for i, name := range names {
		report, err := analyzer.AnalyzeRepo(ctx, name)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "interrupted after %d repositories\n", i)
			break
		}
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		if err := scrape.AppendFlagLog(logPath, report); err != nil {
			return err
		}
		if err := scrape.AppendStats(statsPath, report); err != nil {
			return err
		}
		if n := len(report.AllFlagged()); n > 0 {
			flagged++
			logger.Printf("%s: %d flagged", name, n)
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i+1, len(names), name)
	}

	rows, err := scrape.ReadStats(statsPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d repositories flagged, %d failed\n", flagged, failed)
	return writeOutput(cfg, scrape.ComputeAverages(rows))
}
