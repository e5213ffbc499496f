package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkbench/jdkmig/internal/artifact"
	"github.com/jdkbench/jdkmig/internal/config"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <file...>",
	Short: "Upload datasets and results to S3-compatible storage",
	Long: `Upload local files to the configured bucket, creating it on first use.
Object keys are <prefix>/<key>/<file name>.

Credentials come from ARTIFACT_S3_ACCESS_KEY and ARTIFACT_S3_SECRET_KEY
(or MINIO_ROOT_USER and MINIO_ROOT_PASSWORD) in the environment or .env.
The endpoint, bucket and prefix may also be set in the artifact section of
config.yaml.

Examples:
  jdkmig publish data/synthetic_dataset.json outputs/results.json --key run-7
  jdkmig publish --list`,
	RunE: runPublish,
}

var (
	publishKey  string
	publishList bool
)

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&publishKey, "key", "", "Key segment placed between the prefix and file name")
	publishCmd.Flags().BoolVar(&publishList, "list", false, "List objects under the prefix")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	secrets, err := loadSecrets()
	if err != nil {
		return err
	}
	if !publishList && len(args) == 0 {
		return fmt.Errorf("at least one file is required")
	}

	pub, err := artifact.NewS3Publisher(artifactConfig(cfg, secrets))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if publishList {
		keys, err := pub.List(ctx)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	}

	for _, path := range args {
		key := ""
		if publishKey != "" {
			key = publishKey + "/" + filepath.Base(path)
		}
		objKey, err := pub.Publish(ctx, path, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "uploaded %s to s3://%s/%s\n", path, pub.Bucket(), objKey)
	}
	return nil
}

// artifactConfig layers the environment over config.yaml.
func artifactConfig(cfg *config.Config, secrets *config.Secrets) artifact.S3Config {
	fromFile := artifact.S3Config{
		Endpoint: cfg.Artifact.Endpoint,
		Region:   cfg.Artifact.Region,
		Bucket:   cfg.Artifact.Bucket,
		Prefix:   cfg.Artifact.Prefix,
		UseSSL:   cfg.Artifact.UseSSL,
	}
	return artifact.ConfigFromEnv(secrets.Getenv()).Merge(fromFile)
}
