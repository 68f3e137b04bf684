package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
	"github.com/spechtlabs/ecsview/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd returns the root command shared by the server and the CLI.
// Observability is set up before and flushed after every command.
func NewRootCmd() *cobra.Command {
	cobra.OnInitialize(initConfig)

	var shutdown func()

	cmdRoot := cobra.Command{
		Use:           "ecsview",
		Short:         "ecsview serves a cache backed view of ECS clusters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			shutdown = utils.InitObservability()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if shutdown != nil {
				shutdown()
			}
		},
	}

	cmdRoot.AddCommand(newVersionCmd())
	errPrefix := pretty_print.FormatWithOptions(pretty_print.ErrLvl, "Error:", []string{}, pretty_print.WithoutNewline())
	cmdRoot.SetErrPrefix(errPrefix)

	cmdRoot.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initConfig()
		pretty_print.PrintHelpText(cmd, args)
	})
	cmdRoot.SetUsageFunc(func(cmd *cobra.Command) error {
		initConfig()
		fmt.Println("")
		pretty_print.PrintUsageText(cmd, []string{})
		return nil
	})
	cmdRoot.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		initConfig()
		pretty_print.PrintErrorMessage(err.Error())
		fmt.Println("")
		pretty_print.PrintHelpText(cmd, []string{})
		return nil
	})

	return &cmdRoot
}

func NewCliRootCmd() *cobra.Command {
	cmdRoot := NewRootCmd()
	addClientFlags(cmdRoot)
	cmdRoot.Use = "ecsview [--config|-c <string>] [--debug] [--host|-H <string>] [--port|-p <int>] [--output|-o <format>] [--theme|-t <string>]"
	cmdRoot.Short = "ecsview is the CLI for the ECS cluster view"

	cmdRoot.Long = `ecsview lists the ECS clusters known to the cluster cache and describes them live through the ecsview server.

### Output

- Flag: ` + "`--output`" + ` or ` + "`-o`" + ` with ` + "`table`" + `, ` + "`json`" + ` or ` + "`yaml`" + `
- Config: ` + "`output.format`" + `
- Environment: ` + "`ECSVIEW_OUTPUT_FORMAT`" + `

### Theming

**Accepted themes**: ` + strings.Join(pretty_print.AllThemeNames(), ", ") + `

### Notes

- Global flags like ` + "`--theme`" + ` are available to subcommands`

	cmdRoot.Example = `# list all cached clusters
$ ecsview get clusters

# describe the clusters of one account and region as json
$ ecsview get cluster-details --account prod --region us-west-2 -o json

# talk to a remote server
ECSVIEW_SERVER_HOST=ecsview.internal ecsview get clusters
`

	preRun := cmdRoot.PersistentPreRun
	cmdRoot.PersistentPreRun = nil
	cmdRoot.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		theme := viper.GetString("output.theme")
		if theme == "" {
			theme = string(pretty_print.TokyoNightStyle)
		}
		if !slices.Contains(pretty_print.AllThemeNames(), theme) {
			viper.Set("output.theme", pretty_print.TokyoNightStyle)
			return fmt.Errorf("invalid theme: %s", theme)
		}

		format := strings.ToLower(viper.GetString("output.format"))
		if !slices.Contains(pretty_print.AllOutputFormats(), format) {
			return fmt.Errorf("invalid output format: %s", format)
		}

		preRun(cmd, args)
		return nil
	}

	return cmdRoot
}

func NewServerRootCmd() *cobra.Command {
	cmdRoot := NewRootCmd()
	addServerFlags(cmdRoot)
	cmdRoot.Use = "ecsview-server [--config|-c <string>] [--debug]"
	cmdRoot.Short = "ecsview-server serves the ECS cluster view over HTTP"
	return cmdRoot
}
