package pretty_print

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type helpData struct {
	*cobra.Command
	ShowUsage bool
}

var helpTemplate = template.Must(template.New("help").Funcs(template.FuncMap{
	"FlagUsages": FlagUsages,
}).Parse(`
# Usage
` + "```bash" + `
{{if .Runnable}}{{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}{{.CommandPath}} [command]{{end}}
` + "```" + `

## Description
{{if and .ShowUsage (gt (len .Long) 0)}}
{{.Long}}
{{else}}
{{.Short}}
{{end}}

{{if and .ShowUsage .HasExample}}
## Examples
` + "```bash" + `
{{.Example}}
` + "```" + `
{{end}}

{{if .HasAvailableSubCommands}}
## Available Commands

> [!TIP]
> Use ` + "`{{.CommandPath}} [command] --help`" + ` for more information about a command.

| Command | Description |
|-------------|-------------|{{range .Commands}}{{if and .IsAvailableCommand (ne .Name "help")}}
| **` + "`{{.Name}}`" + `** | {{.Short}} |{{end}}{{end}}
{{end}}

{{if or .HasAvailableLocalFlags .HasAvailableInheritedFlags}}
## Flags

| Flag | Type | Usage |
|------|------|-------|{{range (FlagUsages .LocalFlags)}}
| ` + "`{{.Flag}}`" + ` | {{.Type}} | {{.Usage}} |{{end}}{{if .ShowUsage}}{{range (FlagUsages .InheritedFlags)}}
| ` + "`{{.Flag}}`" + ` | {{.Type}} | {{.Usage}} |{{end}}{{end}}
{{end}}`))

// FormatHelpText renders the full help of cmd including examples and global flags.
func FormatHelpText(cmd *cobra.Command, _ []string, opts ...Option) string {
	return renderHelp(cmd, true, opts...)
}

func PrintHelpText(cmd *cobra.Command, _ []string) {
	fmt.Println(renderHelp(cmd, false))
}

func PrintUsageText(cmd *cobra.Command, _ []string) {
	fmt.Println(renderHelp(cmd, true))
}

func renderHelp(cmd *cobra.Command, showUsage bool, opts ...Option) string {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if viper.GetBool("output.long") {
		showUsage = true
	}

	var buf bytes.Buffer
	if err := helpTemplate.Execute(&buf, helpData{Command: cmd, ShowUsage: showUsage}); err != nil {
		return cmd.UsageString()
	}

	return renderMarkdown(options.Theme, buf.String())
}

type FlagUsage struct {
	Flag  string
	Type  string
	Usage string
}

// FlagUsages lists the visible flags of f with their defaults.
func FlagUsages(f *pflag.FlagSet) []FlagUsage {
	lines := make([]FlagUsage, 0)

	f.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		flagStr := fmt.Sprintf("--%s", flag.Name)
		if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
			flagStr = fmt.Sprintf("-%s, --%s", flag.Shorthand, flag.Name)
		}

		_, usage := pflag.UnquoteUsage(flag)
		if !defaultIsZeroValue(flag) {
			if flag.Value.Type() == "string" {
				usage += fmt.Sprintf(" (default: %q)", flag.DefValue)
			} else {
				usage += fmt.Sprintf(" (default: %s)", flag.DefValue)
			}
		}

		lines = append(lines, FlagUsage{
			Flag:  flagStr,
			Type:  flag.Value.Type(),
			Usage: usage,
		})
	})

	return lines
}

func defaultIsZeroValue(f *pflag.Flag) bool {
	switch f.Value.Type() {
	case "bool":
		return f.DefValue == "false"
	case "duration":
		return f.DefValue == "0" || f.DefValue == "0s"
	case "int", "int32", "int64", "uint", "count":
		return f.DefValue == "0"
	case "string":
		return f.DefValue == ""
	case "stringSlice", "stringArray":
		return f.DefValue == "[]"
	default:
		return f.DefValue == "" || f.DefValue == "<nil>"
	}
}
