package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdkbench/jdkmig/internal/codebleu"
	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/llm"
	"github.com/jdkbench/jdkmig/internal/migrate"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <dataset.json...>",
	Short: "Migrate the Java 8 side of each pair with a model and score it",
	Long: `Prompt the configured model with the Java 8 method of every pair, take
the first java code block of the answer and score it, and the untouched
Java 8 method as a baseline, against the Java 11 method with CodeBLEU.

Each result is appended to <out>.jsonl as soon as it is scored. With
--resume, pairs already present there are not prompted again. The full
result list is written to <out> when the run ends.

Examples:
  jdkmig migrate data/synthetic_dataset.json
  jdkmig migrate data/web_*_dataset.json --provider gemini --workers 4
  jdkmig migrate data/synthetic_dataset.json --resume --limit 20`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMigrate,
}

var (
	migrateOut      string
	migrateResume   bool
	migrateLimit    int
	migrateWorkers  int
	migrateProvider string
	migrateModel    string
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVarP(&migrateOut, "out", "o", "", "Results file (default: <output_dir>/results.json)")
	migrateCmd.Flags().BoolVar(&migrateResume, "resume", false, "Reuse results streamed by an earlier run")
	migrateCmd.Flags().IntVar(&migrateLimit, "limit", 0, "Only migrate the first N pairs")
	migrateCmd.Flags().IntVar(&migrateWorkers, "workers", 0, "Concurrent prompts (default from config)")
	migrateCmd.Flags().StringVar(&migrateProvider, "provider", "", "Model provider: mistral, gemini, fake (default from config)")
	migrateCmd.Flags().StringVar(&migrateModel, "model", "", "Model name (default from config)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	secrets, err := loadSecrets()
	if err != nil {
		return err
	}

	ds, err := dataset.Concat(args...)
	if err != nil {
		return err
	}
	if migrateLimit > 0 && migrateLimit < len(ds) {
		ds = ds[:migrateLimit]
	}

	out := migrateOut
	if out == "" {
		dir, err := ensureDir(cfg.Paths.OutputDir)
		if err != nil {
			return err
		}
		out = filepath.Join(dir, "results.json")
	}
	streamPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".jsonl"

	completed := map[string]dataset.Result{}
	if migrateResume {
		if completed, err = migrate.LoadCompleted(streamPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "resuming with %d completed results\n", len(completed))
	} else if err := os.Remove(streamPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	provider := cfg.LLM.Provider
	model := cfg.LLM.Model
	if migrateProvider != "" {
		provider = migrateProvider
		if migrateProvider != cfg.LLM.Provider {
			model = ""
		}
	}
	if migrateModel != "" {
		model = migrateModel
	}
	client, err := llm.New(ctx, llm.Config{
		Provider:  provider,
		Model:     model,
		APIKey:    secrets.APIKey(provider),
		MaxTokens: cfg.LLM.MaxTokens,
		RPS:       cfg.LLM.RPS,
		Retries:   cfg.LLM.Retries,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	scorer, err := codebleu.NewScorer()
	if err != nil {
		return err
	}
	defer scorer.Close()

	stream, err := dataset.NewJSONLWriter[dataset.Result](streamPath)
	if err != nil {
		return err
	}
	defer stream.Close()

	workers := cfg.LLM.Workers
	if migrateWorkers > 0 {
		workers = migrateWorkers
	}
	p := &migrate.Pipeline{
		Client:    client,
		Scorer:    scorer,
		Writer:    stream,
		Completed: completed,
		Workers:   workers,
		Progress:  os.Stderr,
		Logger:    newLogger(),
	}

	fmt.Fprintf(os.Stderr, "migrating %d pairs with %s\n", len(ds), client.Name())
	sum, results, runErr := p.Run(ctx, ds)

	if err := dataset.SaveResults(out, results); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d results to %s\n", len(results), out)

	if err := writeOutput(cfg, sum); err != nil {
		return err
	}
	return runErr
}
