package pretty_print

import (
	"encoding/json"
	"testing"

	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

var testSummaries = []ecsmodels.ClusterSummary{
	{Name: "payments", Account: "prod", Region: "us-west-2", Arn: "arn:aws:ecs:us-west-2:111111111111:cluster/payments"},
	{Name: "search", Account: "prod", Region: "us-west-2"},
}

func TestFormatClusters(t *testing.T) {
	setEnvForNoTTY(t)

	t.Run("table", func(t *testing.T) {
		got, err := FormatClusters(TableFormat, testSummaries, WithTheme(MarkdownStyle))
		require.Nil(t, err)
		require.Contains(t, got, "2 cluster(s)")
		require.Contains(t, got, "| prod | us-west-2 | **payments** | arn:aws:ecs:us-west-2:111111111111:cluster/payments |")
		require.Contains(t, got, "| prod | us-west-2 | **search** | - |")
	})

	t.Run("empty table", func(t *testing.T) {
		got, err := FormatClusters(TableFormat, nil)
		require.Nil(t, err)
		require.Equal(t, "ℹ No clusters cached\n", got)
	})

	t.Run("json", func(t *testing.T) {
		got, err := FormatClusters(JSONFormat, testSummaries)
		require.Nil(t, err)

		var decoded []ecsmodels.ClusterSummary
		require.NoError(t, json.Unmarshal([]byte(got), &decoded))
		require.Equal(t, testSummaries, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		got, err := FormatClusters(YAMLFormat, testSummaries)
		require.Nil(t, err)
		require.Contains(t, got, "name: payments")

		var decoded []ecsmodels.ClusterSummary
		require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))
		require.Equal(t, testSummaries, decoded)
	})
}

func TestFormatClusterDetails(t *testing.T) {
	setEnvForNoTTY(t)

	details := []ecsmodels.ClusterDetail{
		{
			ClusterSummary:    testSummaries[0],
			Status:            "ACTIVE",
			RunningTasksCount: 12,
			CapacityProviders: []string{"FARGATE", "FARGATE_SPOT"},
			Tags:              map[string]string{"team": "payments", "env": "prod"},
		},
	}

	got, err := FormatClusterDetails(TableFormat, details, WithTheme(MarkdownStyle))
	require.Nil(t, err)
	require.Contains(t, got, "1 cluster(s) in prod/us-west-2")
	require.Contains(t, got, "| **payments** | ACTIVE | 0 | 12 | 0 | 0 | FARGATE, FARGATE_SPOT |")
	require.Contains(t, got, "### Tags of `payments`")
	require.Contains(t, got, "| env | prod |\n| team | payments |")
	require.NotContains(t, got, "### Settings")

	got, err = FormatClusterDetails(TableFormat, nil)
	require.Nil(t, err)
	require.Equal(t, "ℹ No clusters described\n", got)
}

func TestCell(t *testing.T) {
	require.Equal(t, "-", cell(""))
	require.Equal(t, `a\|b c`, cell("a|b\nc"))
}

func TestConfiguredFormat(t *testing.T) {
	t.Cleanup(func() { viper.Set("output.format", nil) })

	viper.Set("output.format", "JSON")
	require.Equal(t, JSONFormat, ConfiguredFormat())

	viper.Set("output.format", "xml")
	require.Equal(t, TableFormat, ConfiguredFormat())
}
