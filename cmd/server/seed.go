package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
	"github.com/spechtlabs/ecsview/pkg/cache"
	ecscache "github.com/spechtlabs/ecsview/pkg/ecs/cache"
	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
)

var seedFile string

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML or JSON file listing the clusters to write")
	_ = seedCmd.MarkFlagRequired("file")
	_ = seedCmd.MarkFlagFilename("file", "yaml", "yml", "json")
}

// seedFileContent is the layout of a seed file.
type seedFileContent struct {
	Clusters []ecsmodels.ClusterSummary `json:"clusters"`
}

var seedCmd = &cobra.Command{
	Use:   "seed --file|-f <path>",
	Short: "Write cluster records into the cluster cache",
	Long: `Write cluster summaries into the configured cache store.

Records use the same key and attribute layout as the ingestion process, so
seeded clusters are served exactly like ingested ones. Existing records with
the same account, region and name are overwritten.`,
	Example: `# Seed the redis cache store from a file
ecsview-server seed --cache-driver redis --file clusters.yaml

# clusters.yaml
clusters:
  - account: prod
    region: us-west-2
    name: payments
    arn: arn:aws:ecs:us-west-2:111111111111:cluster/payments`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		count, err := runSeed(ctx, seedFile)
		if err != nil {
			return err
		}

		pretty_print.PrintOk("Cache seeded", fmt.Sprintf("%d cluster(s) written from %s", count, seedFile))
		return nil
	},
}

func runSeed(ctx context.Context, path string) (int, humane.Error) {
	summaries, err := readSeedFile(path)
	if err != nil {
		return 0, err
	}

	store, err := cache.New(ctx, cacheConfig())
	if err != nil {
		return 0, err
	}
	defer func() { _ = store.Close() }()

	if err := seedStore(ctx, store, summaries); err != nil {
		return 0, err
	}

	return len(summaries), nil
}

func seedStore(ctx context.Context, store cache.Store, summaries []ecsmodels.ClusterSummary) humane.Error {
	if err := ecscache.NewClusterCacheClient(store).Put(ctx, summaries...); err != nil {
		return humane.Wrap(err, "failed to seed the cluster cache", "fix the offending entry in the seed file and retry")
	}

	otelzap.L().InfoContext(ctx, "Seeded cluster cache", zap.Int("clusters", len(summaries)))
	return nil
}

func readSeedFile(path string) ([]ecsmodels.ClusterSummary, humane.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, humane.Wrap(err, "failed to read seed file", "check that the file exists and is readable")
	}

	var content seedFileContent
	if err := yaml.UnmarshalStrict(data, &content); err != nil {
		return nil, humane.Wrap(err, "failed to parse seed file", "the file must contain a 'clusters' list of account, region, name and arn entries")
	}

	return content.Clusters, nil
}
