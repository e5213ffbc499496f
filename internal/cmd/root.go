// Package cmd contains all CLI commands for jdkmig.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jdkbench/jdkmig/internal/cache"
	"github.com/jdkbench/jdkmig/internal/config"
	"github.com/jdkbench/jdkmig/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of jdkmig
	Version = "0.1.0"

	// Global flags
	verbose       bool
	configPath    string
	forAgents     bool
	outputFormat  string
	outputDensity string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jdkmig",
	Short: "Build and evaluate Java 8 to Java 11 migration datasets",
	Long: `jdkmig collects pairs of Java 8 and Java 11 methods, asks a model to
migrate the Java 8 side and scores the answer with CodeBLEU.

Pipeline:
  jdkmig gather                     # Find popular Java repositories
  jdkmig analyse                    # Flag repositories discussing the migration
  jdkmig scrape pairs.txt           # Mine method pairs from branch pairs
  jdkmig synth synthetic.json       # Import hand-written pairs
  jdkmig migrate dataset.json       # Prompt the model and score results
  jdkmig stats dataset.json         # Dataset statistics
  jdkmig results results.json       # Score and keyword removal statistics

Output Format:
  Commands print YAML by default. Use --format json for JSON and --density
  to control how much of each method is shown (sparse|medium|dense).

See 'jdkmig <command> --help' for command-specific options.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .jdkmig/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (yaml|json), default from config")
	rootCmd.PersistentFlags().StringVar(&outputDensity, "density", "medium", "Output density (sparse|medium|dense)")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// loadConfig reads --config when given, otherwise the nearest
// .jdkmig/config.yaml, otherwise defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}

func loadSecrets() (*config.Secrets, error) {
	return config.LoadSecrets(".")
}

// projectRoot is the directory holding .jdkmig, or the working directory.
func projectRoot() string {
	if dir, err := config.FindConfigDir("."); err == nil {
		return filepath.Dir(dir)
	}
	return "."
}

// resolvePath anchors a configured relative path at the project root.
func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectRoot(), p)
}

// ensureDir creates a configured directory and returns its resolved path.
func ensureDir(p string) (string, error) {
	dir := resolvePath(p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

func openCache(cfg *config.Config) (*cache.Cache, error) {
	dir, err := ensureDir(cfg.Paths.CacheDir)
	if err != nil {
		return nil, err
	}
	return cache.Open(dir)
}

// newLogger logs per-item detail to stderr under --verbose.
func newLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", 0)
	}
	return log.New(io.Discard, "", 0)
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// writeOutput prints v in the format chosen by --format or the config.
func writeOutput(cfg *config.Config, v any) error {
	name := outputFormat
	if name == "" && cfg != nil {
		name = cfg.Output.Format
	}
	if name == "" {
		name = string(output.DefaultFormat)
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	density, err := output.ParseDensity(outputDensity)
	if err != nil {
		return err
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatToWriter(os.Stdout, v, density)
}

// CommandInfo represents a command for agent discovery
type CommandInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
}

// FlagInfo represents a command flag for agent discovery
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// outputAgentHelp outputs machine-readable JSON describing all commands
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]any{
		"version":      Version,
		"commands":     root.Subcommands,
		"global_flags": root.Flags,
	})
}

// buildCommandInfo recursively builds command information for agent discovery
func buildCommandInfo(cmd *cobra.Command) CommandInfo {
	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		info.Flags = append(info.Flags, FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})

	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
		}
	}

	if cmd.Example != "" {
		for _, line := range strings.Split(cmd.Example, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				info.Examples = append(info.Examples, trimmed)
			}
		}
	}

	return info
}
