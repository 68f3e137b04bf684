package pretty_print

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sierrasoftworks/humane-errors-go"
	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

type OutputFormat string

const (
	TableFormat OutputFormat = "table"
	JSONFormat  OutputFormat = "json"
	YAMLFormat  OutputFormat = "yaml"
)

func AllOutputFormats() []string {
	return []string{string(TableFormat), string(JSONFormat), string(YAMLFormat)}
}

// ConfiguredFormat returns output.format, or the table format when unset or unknown.
func ConfiguredFormat() OutputFormat {
	format := strings.ToLower(viper.GetString("output.format"))
	if slices.Contains(AllOutputFormats(), format) {
		return OutputFormat(format)
	}
	return TableFormat
}

// FormatClusters renders cluster summaries in the given format.
func FormatClusters(format OutputFormat, items []ecsmodels.ClusterSummary, opts ...Option) (string, humane.Error) {
	if format != TableFormat {
		return marshal(format, items)
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if len(items) == 0 {
		return FormatWithOptions(InfoLvl, "No clusters cached", nil, opts...), nil
	}

	var b strings.Builder
	b.WriteString("| Account | Region | Name | ARN |\n")
	b.WriteString("|---------|--------|------|-----|\n")
	for _, c := range items {
		fmt.Fprintf(&b, "| %s | %s | **%s** | %s |\n", cell(c.Account), cell(c.Region), cell(c.Name), cell(c.Arn))
	}

	return heading(options, fmt.Sprintf("%d cluster(s)", len(items))) + renderMarkdown(options.Theme, b.String()), nil
}

// FormatClusterDetails renders live cluster descriptions in the given format.
func FormatClusterDetails(format OutputFormat, items []ecsmodels.ClusterDetail, opts ...Option) (string, humane.Error) {
	if format != TableFormat {
		return marshal(format, items)
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if len(items) == 0 {
		return FormatWithOptions(InfoLvl, "No clusters described", nil, opts...), nil
	}

	var b strings.Builder
	b.WriteString("| Name | Status | Instances | Running | Pending | Services | Capacity Providers |\n")
	b.WriteString("|------|--------|-----------|---------|---------|----------|--------------------|\n")
	for _, c := range items {
		fmt.Fprintf(&b, "| **%s** | %s | %d | %d | %d | %d | %s |\n",
			cell(c.Name), cell(c.Status),
			c.RegisteredContainerInstancesCount, c.RunningTasksCount, c.PendingTasksCount, c.ActiveServicesCount,
			cell(strings.Join(c.CapacityProviders, ", ")),
		)
	}

	for _, c := range items {
		sections := []struct {
			title string
			kv    map[string]string
		}{
			{"Tags", c.Tags},
			{"Statistics", c.Statistics},
			{"Settings", c.Settings},
		}

		for _, s := range sections {
			if len(s.kv) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s of `%s`\n\n| Key | Value |\n|-----|-------|\n", s.title, c.Name)
			for _, k := range slices.Sorted(maps.Keys(s.kv)) {
				fmt.Fprintf(&b, "| %s | %s |\n", cell(k), cell(s.kv[k]))
			}
		}
	}

	title := fmt.Sprintf("%d cluster(s) in %s/%s", len(items), items[0].Account, items[0].Region)
	return heading(options, title) + renderMarkdown(options.Theme, b.String()), nil
}

func heading(options *PrintOptions, title string) string {
	if options.NoColor {
		return title + "\n"
	}
	return boldStyle(options.Theme).Render(title) + "\n"
}

// cell escapes characters that would break a markdown table row.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}

func marshal(format OutputFormat, v any) (string, humane.Error) {
	switch format {
	case YAMLFormat:
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", humane.Wrap(err, "failed to encode output as yaml")
		}
		return string(out), nil

	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", humane.Wrap(err, "failed to encode output as json")
		}
		return string(out) + "\n", nil
	}
}
