package main

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

var frontMatterTmpl = template.Must(template.New("frontMatter").Parse(`---
title: {{ .Title }}
permalink: {{ .Permalink }}
---`))

func init() {
	cmdDocumentation.Flags().BoolP("markdownlint-fix", "m", false, "Fix markdownlint errors")
	viper.SetDefault("output.markdownlint-fix", false)
	if err := viper.BindPFlag("output.markdownlint-fix", cmdDocumentation.Flags().Lookup("markdownlint-fix")); err != nil {
		panic(humane.Wrap(err, "fatal binding flag", "check that the flag name matches the viper key")) //nolint:nopanic // flag binding errors are programming errors
	}

	cmdDocumentation.Flags().Bool("front-matter", false, "Prepend front matter")
	cmdDocumentation.Flags().String("title", "CLI Reference", "Title of the front matter")
	cmdDocumentation.Flags().String("permalink", "/reference/cli", "Permalink of the front matter")
}

var cmdDocumentation = &cobra.Command{
	Use:    "documentation <path> [--markdownlint-fix] [--front-matter] [--title <title>] [--permalink <permalink>]",
	Short:  "Generate the reference documentation for the ecsview CLI commands",
	Long:   `The documentation command renders the help of every ecsview command into a single markdown file.`,
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	Example: `# Refresh docs/reference/cli.md
ecsview generate documentation docs/reference/cli.md

# Refresh it with front matter and fix markdownlint errors
ecsview generate documentation docs/reference/cli.md --front-matter --markdownlint-fix`,
	RunE: func(cmd *cobra.Command, args []string) error {
		markdown := strings.Join(renderReferenceHelp(getRootCmd(cmd), 0), "")

		if useFrontMatter, _ := cmd.Flags().GetBool("front-matter"); useFrontMatter {
			title, _ := cmd.Flags().GetString("title")
			permalink, _ := cmd.Flags().GetString("permalink")

			var buf bytes.Buffer
			if err := frontMatterTmpl.Execute(&buf, struct{ Title, Permalink string }{title, permalink}); err != nil {
				return humane.Wrap(err, "failed to render front matter")
			}
			markdown = buf.String() + "\n\n" + markdown
		}

		filePath := args[0]
		if err := os.WriteFile(filePath, []byte(markdown), 0o644); err != nil {
			return humane.Wrap(err, "failed to write documentation", "check that the target directory exists and is writable")
		}

		if viper.GetBool("output.markdownlint-fix") {
			if err := exec.Command("markdownlint-cli2", "--fix", filePath).Run(); err != nil {
				return humane.Wrap(err, "markdownlint-cli2 failed", "install markdownlint-cli2 or drop --markdownlint-fix")
			}
		}

		return nil
	},
}

func getRootCmd(cmd *cobra.Command) *cobra.Command {
	for cmd.HasParent() {
		cmd = cmd.Parent()
	}
	return cmd
}

// renderReferenceHelp renders cmd and its visible descendants depth first.
func renderReferenceHelp(cmd *cobra.Command, depth int) []string {
	if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	helpText := pretty_print.FormatHelpText(cmd, nil, pretty_print.WithTheme(pretty_print.MarkdownStyle))
	rendered := []string{fixHeadingLevels(helpText, depth)}

	for _, child := range cmd.Commands() {
		rendered = append(rendered, renderReferenceHelp(child, depth+1)...)
	}

	return rendered
}

// fixHeadingLevels pushes every markdown heading outside code blocks down by depth levels.
// The root is treated as depth 1.
func fixHeadingLevels(helpText string, depth int) string {
	depth = max(depth, 1)

	lines := strings.Split(helpText, "\n")
	withinCodeBlock := false
	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			withinCodeBlock = !withinCodeBlock
		}

		if withinCodeBlock || !strings.HasPrefix(line, "#") {
			continue
		}

		level := len(line) - len(strings.TrimLeft(line, "#"))
		lines[i] = strings.Repeat("#", level+depth) + line[level:]
	}
	return strings.Join(lines, "\n")
}
