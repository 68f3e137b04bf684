package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

func init() {
	cmdConfig.Flags().BoolP("force", "f", false, "Create ~/.config/ecsview/config.yaml if no config file exists")
	cmdSetConfig.Flags().BoolP("force", "f", false, "Create ~/.config/ecsview/config.yaml if no config file exists")
	cmdGetConfig.Flags().Bool("filename", false, "Show the filename of the config file used")
	cmdConfig.Flags().Bool("filename", false, "Show the filename of the config file used")
}

var cmdConfig = &cobra.Command{
	Use:   "config [key] [value] [--force]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values in the ecsview configuration file.

This command works similarly to ` + "`git config --global`" + `:

- When called with no arguments, shows all current configuration
- When called with just a key, it shows the current value
- When called with key and value, it sets the configuration
- Configuration is written to the file that was used to load the current config
- If no config file exists and ` + "`--force`" + ` is used, creates ` + "`~/.config/ecsview/config.yaml`",

	Example: `# Show all current configuration
ecsview config

# Show the configured output format
ecsview config output.format

# Always print json
ecsview config output.format json

# Create a config file and set a value (when no config exists)
ecsview config server.host ecsview.internal --force`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runConfig,
}

var cmdSetConfig = &cobra.Command{
	Use:   "config <key> <value> [--force]",
	Short: "Set configuration values",
	Long: `Set a configuration value in the ecsview configuration file.

The value is written to the file that was used to load the current config.
If no config file exists and ` + "`--force`" + ` is used, ` + "`~/.config/ecsview/config.yaml`" + ` is created.`,
	Example: `# Switch to the dracula theme
ecsview set config output.theme dracula

# Give slow servers more time
ecsview set config api.timeout 2m`,
	Args: cobra.ExactArgs(2),
	RunE: runConfig,
}

var cmdGetConfig = &cobra.Command{
	Use:   "config [key] [--filename]",
	Short: "Get configuration values",
	Long: `Show configuration values of the ecsview CLI.

- When called with no arguments, shows all current configuration
- When called with just a key, it shows the current value`,
	Example: `# Show all current configuration
ecsview get config

# Show the server the CLI talks to
ecsview get config server.host

# Only print the path of the config file
ecsview get config --filename --quiet`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	quiet := viper.GetBool("output.quiet")
	showFilename, _ := cmd.Flags().GetBool("filename")

	switch len(args) {
	case 0:
		return showAllConfig(cmd, showFilename, quiet)

	case 1:
		if showFilename && quiet {
			return humane.New("cannot combine --filename and --quiet when also specifying a [key]")
		}
		printConfigValue(cmd, args[0], showFilename, quiet)
		return nil

	default:
		key, value := args[0], args[1]
		force, _ := cmd.Flags().GetBool("force")
		if err := setConfigValue(key, value, force); err != nil {
			return err
		}
		if !quiet {
			pretty_print.PrintOk("Configuration updated", fmt.Sprintf("%s = %v", key, value))
		}
		return nil
	}
}

//nolint:golint-sl // CLI user output
func printConfigValue(cmd *cobra.Command, key string, showFilename, quiet bool) {
	value := viper.Get(key)

	if quiet {
		if value != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
		}
		return
	}

	if value == nil {
		pretty_print.PrintInfo(fmt.Sprintf("Configuration key not set: %s", key))
		return
	}

	context := []string{}
	if showFilename {
		context = append(context, "Config file used: "+viper.ConfigFileUsed())
	}
	pretty_print.PrintInfoIcon("→", fmt.Sprintf("%s: %v", key, value), context...)
}

// defaultConfigPath is where --force creates the config file.
func defaultConfigPath() (string, humane.Error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", humane.Wrap(err, "failed to determine home directory", "ensure $HOME is set")
	}
	return filepath.Join(homeDir, ".config", "ecsview", "config.yaml"), nil
}

func setConfigValue(key, value string, forceCreate bool) humane.Error {
	configFileUsed := viper.ConfigFileUsed()

	if configFileUsed == "" && !forceCreate {
		return humane.New("no configuration file is used",
			"run 'ecsview config <key> <value> --force' to create ~/.config/ecsview/config.yaml",
		)
	}

	if configFileUsed == "" {
		configPath, err := defaultConfigPath()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return humane.Wrap(err, "failed to create config directory", "check permissions for ~/.config/")
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := os.WriteFile(configPath, nil, 0o600); err != nil {
				return humane.Wrap(err, "failed to create config file", "check permissions for ~/.config/ecsview/")
			}
		}
		viper.SetConfigFile(configPath)
	}

	viper.Set(key, parseValue(value))

	if err := viper.WriteConfig(); err != nil {
		return humane.Wrap(err, "failed to write config file", "check file permissions and disk space")
	}

	return nil
}

// parseValue keeps booleans, integers and durations typed in the written YAML.
func parseValue(value string) any {
	if b, err := strconv.ParseBool(value); err == nil && (value == "true" || value == "false") {
		return b
	}

	if i, err := strconv.Atoi(value); err == nil {
		return i
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d.String()
	}

	return value
}

//nolint:golint-sl // CLI user output
func showAllConfig(cmd *cobra.Command, showFilename, quiet bool) error {
	out := cmd.OutOrStdout()

	if showFilename {
		if quiet {
			fmt.Fprintln(out, viper.ConfigFileUsed())
			return nil
		}
		pretty_print.PrintInfo("Config file used:", viper.ConfigFileUsed())
	}

	if quiet {
		return nil
	}

	buf := new(bytes.Buffer)
	if err := viper.WriteConfigTo(buf); err != nil {
		return humane.Wrap(err, "failed to render configuration", "check the config file for syntax errors")
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, buf.String())
	return nil
}
