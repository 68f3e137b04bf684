package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spechtlabs/ecsview/internal/cli/async_operation"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
	"github.com/spechtlabs/ecsview/pkg/models"
)

func init() {
	cmdClusterDetails.Flags().StringP("account", "a", "", "Account the clusters belong to")
	cmdClusterDetails.Flags().StringP("region", "r", "", "Region the clusters live in")
	cmdClusterDetails.Flags().StringSliceP("include", "i", nil, "Additional fields to describe (ATTACHMENTS, CONFIGURATIONS, SETTINGS, STATISTICS, TAGS)")
	_ = cmdClusterDetails.MarkFlagRequired("account")
	_ = cmdClusterDetails.MarkFlagRequired("region")
	_ = cmdClusterDetails.RegisterFlagCompletionFunc("include", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"ATTACHMENTS", "CONFIGURATIONS", "SETTINGS", "STATISTICS", "TAGS"}, cobra.ShellCompDirectiveNoFileComp
	})
}

var cmdClusters = &cobra.Command{
	Use:     "clusters",
	Aliases: []string{"cluster"},
	Short:   "List the cached ECS clusters",
	Long: `List every ECS cluster known to the cluster cache.

The list comes from the cache only; no AWS API is called.`,
	Example: `# List all cached clusters
ecsview get clusters

# List them as json
ecsview get clusters -o json`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := fetchWithSpinner(commandContext(cmd), "Fetching cached clusters...", func(ctx context.Context) (*models.ClusterListResponse, int, humane.Error) {
			return doRequestAndDecode[models.ClusterListResponse](ctx, http.MethodGet, clustersURI(), nil)
		})
		if err != nil {
			return err
		}

		out, err := pretty_print.FormatClusters(pretty_print.ConfiguredFormat(), resp.Items)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out) //nolint:golint-sl // CLI user output
		return nil
	},
}

var cmdClusterDetails = &cobra.Command{
	Use:     "cluster-details --account|-a <string> --region|-r <string> [--include|-i <field>]",
	Aliases: []string{"describe"},
	Short:   "Describe the ECS clusters of an account and region",
	Long: `Describe every cached ECS cluster of one account and region with live data from the ECS API.

Clusters are described in batches of up to 100. A batch the ECS API rejects is
skipped, so the result may contain fewer clusters than the cache lists.`,
	Example: `# Describe the clusters of the prod account in us-west-2
ecsview get cluster-details --account prod --region us-west-2

# Include tags and statistics
ecsview get cluster-details -a prod -r us-west-2 --include TAGS,STATISTICS`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, _ []string) error {
		account, _ := cmd.Flags().GetString("account")
		region, _ := cmd.Flags().GetString("region")
		include, _ := cmd.Flags().GetStringSlice("include")

		msg := fmt.Sprintf("Describing clusters of %s in %s...", account, region)
		resp, err := fetchWithSpinner(commandContext(cmd), msg, func(ctx context.Context) (*models.ClusterDetailListResponse, int, humane.Error) {
			return doRequestAndDecode[models.ClusterDetailListResponse](ctx, http.MethodGet, clusterDescriptionsURI(account, region, include), nil)
		})
		if err != nil {
			return err
		}

		out, err := pretty_print.FormatClusterDetails(pretty_print.ConfiguredFormat(), resp.Items)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out) //nolint:golint-sl // CLI user output
		return nil
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// fetchWithSpinner runs fetch behind a spinner. Transport errors, 429 and
// 5xx responses are retried; any other status is final.
func fetchWithSpinner[T any](ctx context.Context, msg string, fetch func(context.Context) (*T, int, humane.Error)) (*T, humane.Error) {
	if timeout := viper.GetDuration("api.timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lastStatus := 0
	poll := func(ctx context.Context) (*T, humane.Error) {
		result, status, err := fetch(ctx)
		lastStatus = status
		return result, err
	}

	spinner := async_operation.NewSpinner[*T](poll,
		async_operation.WithInProgressMessage(msg),
		async_operation.WithDoneMessage(strings.TrimSuffix(msg, "...")),
		async_operation.WithMaxAttempts(viper.GetInt("api.maxAttempts")),
		async_operation.WithDelay(viper.GetDuration("api.retryDelay")),
		async_operation.WithRetryable(func(humane.Error) bool { return isRetryable(lastStatus) }),
		async_operation.WithQuiet(viper.GetBool("output.quiet")),
	)

	result, err := spinner.Run(ctx)
	if err != nil {
		return nil, err
	}
	return *result, nil
}
