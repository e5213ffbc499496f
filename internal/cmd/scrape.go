package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/extract"
	"github.com/jdkbench/jdkmig/internal/scrape"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <pairs.txt>",
	Short: "Mine Java 8 / Java 11 method pairs from repository branches",
	Long: `Read blank-line separated blocks of two GitHub branch URLs (the Java 8
branch, then the Java 11 branch), compare the Java files common to both and
pair the methods of every modified file.

Methods that mention a deprecated Java 8 API are paired with the Java 11
method of the same name. Pairs whose parameters are unchanged and pairs
whose parameters changed are written to separate datasets.

Downloaded blobs are cached in .jdkmig/cache/cache.db, and file pairs already
mined are remembered there.

Examples:
  jdkmig scrape pairs.txt
  jdkmig scrape pairs.txt --skip-seen --dedupe`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

var (
	scrapeSkipSeen  bool
	scrapeDedupe    bool
	scrapeMinLength int
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().BoolVar(&scrapeSkipSeen, "skip-seen", false, "Skip file pairs mined by an earlier run")
	scrapeCmd.Flags().BoolVar(&scrapeDedupe, "dedupe", false, "Drop pairs that duplicate one already collected")
	scrapeCmd.Flags().IntVar(&scrapeMinLength, "min-length", 0, "Minimum Java 8 method length (default from config)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	secrets, err := loadSecrets()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	pairs, err := scrape.ParseRepoPairs(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	c, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ex, err := extract.NewFileExtractor()
	if err != nil {
		return err
	}
	defer ex.Close()

	minLength := cfg.GitHub.MinFunctionLength
	if scrapeMinLength > 0 {
		minLength = scrapeMinLength
	}

	client := newGitHubClient(cfg, secrets, c)
	b := &scrape.Builder{
		Source:    client,
		Extractor: ex,
		APIBase:   client.BaseURL(),
		MinLength: minLength,
		Index:     c,
		SkipSeen:  scrapeSkipSeen,
		Dedupe:    scrapeDedupe,
		Progress:  os.Stderr,
		Logger:    newLogger(),
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, runErr := b.Run(ctx, pairs)
	if res == nil {
		return runErr
	}

	dir, err := ensureDir(cfg.Paths.DataDir)
	if err != nil {
		return err
	}
	outputs := []struct {
		name string
		ds   dataset.Dataset
	}{
		{"web_same_params_dataset.json", res.SameParams},
		{"web_diff_params_dataset.json", res.DiffParams},
	}
	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		if err := dataset.Save(path, o.ds); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d pairs to %s\n", len(o.ds), path)
	}

	if err := writeOutput(cfg, scrapeSummary(res)); err != nil {
		return err
	}
	return runErr
}

// scrapeSummaryOutput is printed after a scrape run.
type scrapeSummaryOutput struct {
	RepoPairs     int `yaml:"repo_pairs" json:"repo_pairs"`
	FailedRepos   int `yaml:"failed_repos" json:"failed_repos"`
	ModifiedFiles int `yaml:"modified_files" json:"modified_files"`
	FailedFiles   int `yaml:"failed_files" json:"failed_files"`
	SeenFiles     int `yaml:"seen_files" json:"seen_files"`
	SameParams    int `yaml:"same_params" json:"same_params"`
	DiffParams    int `yaml:"diff_params" json:"diff_params"`
	Duplicates    int `yaml:"duplicates" json:"duplicates"`
	Skipped       int `yaml:"skipped_methods" json:"skipped_methods"`
}

func scrapeSummary(res *scrape.BuildResult) scrapeSummaryOutput {
	return scrapeSummaryOutput{
		RepoPairs:     res.RepoPairs,
		FailedRepos:   res.FailedRepos,
		ModifiedFiles: res.ModifiedFiles,
		FailedFiles:   res.FailedFiles,
		SeenFiles:     res.SeenFiles,
		SameParams:    len(res.SameParams),
		DiffParams:    len(res.DiffParams),
		Duplicates:    res.Duplicates,
		Skipped:       res.Skipped,
	}
}
