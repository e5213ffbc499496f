package cmd

import (
	"fmt"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/report"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results <results.json...>",
	Short: "Average CodeBLEU scores and deprecated API removal of migrations",
	Long: `Concatenate result files written by 'jdkmig migrate' and report:

  scores    Average of each metric for the generated code and for the Java 8
            baseline, skipping results whose dataflow could not be scored,
            plus the names of complete matches.
  keywords  Share of generated methods free of deprecated terms and the
            removal rate per API category.

Examples:
  jdkmig results outputs/results.json
  jdkmig results outputs/results.json --only keywords --terms secondary`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResults,
}

var (
	resultsOnly  string
	resultsTerms string
)

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().StringVar(&resultsOnly, "only", "", "Print a single report: scores or keywords")
	resultsCmd.Flags().StringVar(&resultsTerms, "terms", "secondary", "Term set for keyword removal: "+termSetNames())
}

// resultsOutput holds both result reports.
type resultsOutput struct {
	Scores   *report.ScoresReport  `yaml:"scores" json:"scores"`
	Keywords *report.KeywordReport `yaml:"keywords" json:"keywords"`
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var only report.ReportType
	if resultsOnly != "" {
		if only, err = report.ParseReportType(resultsOnly); err != nil {
			return err
		}
	}

	results, err := dataset.ConcatResults(args...)
	if err != nil {
		return err
	}
	terms, err := termSet(resultsTerms)
	if err != nil {
		return err
	}

	switch only {
	case report.ReportTypeScores:
		return writeOutput(cfg, report.AverageScores(results))
	case report.ReportTypeKeywords:
		return writeOutput(cfg, report.KeywordRemoval(results, terms))
	case report.ReportTypeDataset:
		return fmt.Errorf("dataset statistics come from 'jdkmig stats'")
	}
	return writeOutput(cfg, resultsOutput{
		Scores:   report.AverageScores(results),
		Keywords: report.KeywordRemoval(results, terms),
	})
}
