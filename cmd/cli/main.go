package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spechtlabs/ecsview/internal/cli/cmd"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

var (
	cmdRoot = cmd.NewCliRootCmd()
)

func main() {
	cmdGet := &cobra.Command{
		Use:   "get <command>",
		Short: "Retrieve resources from the ECS cluster view.",
		Long:  `The get command retrieves cached clusters and live cluster descriptions from the ecsview server`,
		Args:  cobra.ExactArgs(0),
		Example: `# List the cached clusters
ecsview get clusters

# Describe the clusters of an account and region
ecsview get cluster-details --account prod --region us-west-2`,
	}

	cmdSet := &cobra.Command{
		Use:   "set <command>",
		Short: "Set CLI settings.",
		Long:  `The set command changes settings of the ecsview CLI`,
		Args:  cobra.ExactArgs(0),
		Example: `# Switch the theme
ecsview set config output.theme dark`,
	}

	cmdGenerate := &cobra.Command{
		Use:    "generate <command>",
		Short:  "Generate resources for the ecsview CLI.",
		Args:   cobra.ExactArgs(0),
		Hidden: true,
	}

	cmdRoot.AddCommand(cmdGet, cmdSet, cmdGenerate)

	// Clusters
	cmdGet.AddCommand(cmdClusters)
	cmdGet.AddCommand(cmdClusterDetails)

	// Config
	cmdRoot.AddCommand(cmdConfig)
	cmdGet.AddCommand(cmdGetConfig)
	cmdSet.AddCommand(cmdSetConfig)

	// Documentation
	cmdGenerate.AddCommand(cmdDocumentation)

	if err := cmdRoot.Execute(); err != nil {
		pretty_print.PrintError(err)
		os.Exit(1)
	}
}
