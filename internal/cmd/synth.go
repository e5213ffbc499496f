package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/spf13/cobra"
)

var synthCmd = &cobra.Command{
	Use:   "synth <synthetic.json>",
	Short: "Import hand-written pairs as a dataset",
	Long: `Read a JSON array of {"name", "java8", "java11"} objects and write the
synthetic dataset, with method lengths filled in.

Examples:
  jdkmig synth synthetic.json
  jdkmig synth synthetic.json -o data/synthetic_dataset.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSynth,
}

var synthOut string

func init() {
	rootCmd.AddCommand(synthCmd)
	synthCmd.Flags().StringVarP(&synthOut, "out", "o", "", "Output dataset (default: <data_dir>/synthetic_dataset.json)")
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ds, err := dataset.ImportSynthetic(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := synthOut
	if out == "" {
		dir, err := ensureDir(cfg.Paths.DataDir)
		if err != nil {
			return err
		}
		out = filepath.Join(dir, "synthetic_dataset.json")
	}
	if err := dataset.Save(out, ds); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d synthetic pairs to %s\n", len(ds), out)
	return nil
}
