package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the blob cache",
	Long: `The cache holds downloaded GitHub blobs and the file pairs already
scraped, in <cache_dir>/cache.db.

Examples:
  jdkmig cache stats
  jdkmig cache clear             # drop blobs and scraped records
  jdkmig cache clear --scraped   # only forget which pairs were scraped`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		stats, err := c.GetStats()
		if err != nil {
			return err
		}
		return writeOutput(cfg, stats)
	},
}

var cacheClearScraped bool

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		if cacheClearScraped {
			err = c.ClearScraped()
		} else {
			err = c.Clear()
		}
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", c.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	cacheClearCmd.Flags().BoolVar(&cacheClearScraped, "scraped", false, "Only clear the scraped-pair records")
}
