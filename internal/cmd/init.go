package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/cache"
	"github.com/jdkbench/jdkmig/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .jdkmig directory, config and cache",
	Long: `Initialize the .jdkmig directory in the current directory.

This writes a default config.yaml, creates the data and output directories
and the SQLite cache that holds downloaded GitHub blobs and the record of
file pairs already scraped. Secrets go in a .env file next to .jdkmig.

Examples:
  jdkmig init          # Initialize in current directory
  jdkmig init --force  # Rewrite config.yaml with defaults`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfgFile := filepath.Join(cwd, config.ConfigDirName, config.ConfigFileName)
	_, err = os.Stat(cfgFile)
	if err == nil {
		if !initForce {
			fmt.Printf("Already initialized at %s\n", config.ConfigDirName)
			return nil
		}
		if err := os.Remove(cfgFile); err != nil {
			return fmt.Errorf("removing existing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config path: %w", err)
	}

	path, err := config.SaveDefault(cwd)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.OutputDir, cfg.Paths.CacheDir} {
		if err := os.MkdirAll(filepath.Join(cwd, dir), 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	c, err := cache.Open(filepath.Join(cwd, cfg.Paths.CacheDir))
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer c.Close()

	relPath, _ := filepath.Rel(cwd, path)
	fmt.Printf("Initialized jdkmig at %s\n", relPath)
	return nil
}
