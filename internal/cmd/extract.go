package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/exclude"
	"github.com/jdkbench/jdkmig/internal/extract"
	"github.com/jdkbench/jdkmig/internal/output"
	"github.com/jdkbench/jdkmig/internal/parser"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.java|dir>",
	Short: "Extract the methods of Java source files",
	Long: `Locate every method of a Java file, isolate its text by brace counting,
left-align it and read its parameter list.

A directory is walked for .java files, skipping Maven and Gradle build
output. Methods shorter than --min-length lines are counted but not listed.

Examples:
  jdkmig extract Codec.java
  jdkmig extract Codec.java --density dense     # include method source
  jdkmig extract src/ --min-length 10 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var (
	extractMinLength   int
	extractAllowErrors bool
)

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().IntVar(&extractMinLength, "min-length", 0, "Minimum method length in lines")
	extractCmd.Flags().BoolVar(&extractAllowErrors, "allow-syntax-errors", false, "Extract from files that do not parse cleanly")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := args[0]
	files, err := exclude.JavaFiles(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .java files under %s", root)
	}

	ex, err := extract.NewFileExtractor()
	if err != nil {
		return err
	}
	defer ex.Close()
	ex.AllowSyntaxErrors = extractAllowErrors

	info, _ := os.Stat(root)
	var outputs []*output.ExtractOutput
	for _, rel := range files {
		path := root
		if info.IsDir() {
			path = filepath.Join(root, rel)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		res, err := ex.ExtractAll(source, extractMinLength)
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			pe.File = rel
			if len(files) > 1 {
				fmt.Fprintf(os.Stderr, "skipping: %v\n", pe)
				continue
			}
			return pe
		}
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		if verbose {
			for _, s := range res.Skipped {
				fmt.Fprintf(os.Stderr, "%s: skipped %s\n", rel, s)
			}
		}
		outputs = append(outputs, output.NewExtractOutput(rel, res))
	}

	for _, out := range outputs {
		if err := writeOutput(cfg, out); err != nil {
			return err
		}
	}
	return nil
}
