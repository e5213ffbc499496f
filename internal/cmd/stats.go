package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/deprecation"
	"github.com/jdkbench/jdkmig/internal/output"
	"github.com/jdkbench/jdkmig/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <dataset.json...>",
	Short: "Length, parameter and deprecated API statistics for datasets",
	Long: `Concatenate the given datasets and report, for the Java 8 and Java 11
sides, method length statistics and average parameter count, how many
pairs changed signature, and the share of Java 8 methods mentioning each
deprecated term.

Examples:
  jdkmig stats data/web_same_params_dataset.json data/web_diff_params_dataset.json
  jdkmig stats data/synthetic_dataset.json --terms secondary --map-terms
  jdkmig stats data/synthetic_dataset.json --list --density dense`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

var (
	statsTerms    string
	statsMapTerms bool
	statsList     bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsTerms, "terms", "initial", "Term set: "+termSetNames())
	statsCmd.Flags().BoolVar(&statsMapTerms, "map-terms", false, "Group keyword counts by API category")
	statsCmd.Flags().BoolVar(&statsList, "list", false, "List the pairs instead of computing statistics")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := dataset.Concat(args...)
	if err != nil {
		return err
	}

	if statsList {
		return writeOutput(cfg, output.NewDatasetOutput(strings.Join(args, ","), ds))
	}

	terms, err := termSet(statsTerms)
	if err != nil {
		return err
	}
	return writeOutput(cfg, report.DatasetStats(ds, terms, statsMapTerms))
}

func termSet(name string) ([]string, error) {
	terms, ok := deprecation.TermSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown term set %q (expected %s)", name, termSetNames())
	}
	return terms, nil
}

func termSetNames() string {
	names := make([]string, 0, len(deprecation.TermSets))
	for n := range deprecation.TermSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
