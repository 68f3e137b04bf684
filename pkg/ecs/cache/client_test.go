package cache

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/stretchr/testify/require"

	cachestore "github.com/spechtlabs/ecsview/pkg/cache"
	"github.com/spechtlabs/ecsview/pkg/ecs/models"
)

type brokenStore struct {
	cachestore.Store
}

func (brokenStore) GetAll(context.Context, string) ([]cachestore.Record, humane.Error) {
	return nil, humane.New("connection refused")
}

func TestGetAll(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStore("test", 0)
	client := NewClusterCacheClient(store)

	require.Nil(t, client.Put(ctx,
		models.ClusterSummary{Name: "web", Account: "prod", Region: "us-west-2", Arn: "arn:aws:ecs:us-west-2:1:cluster/web"},
		models.ClusterSummary{Name: "api", Account: "prod", Region: "us-west-2"},
		models.ClusterSummary{Name: "batch", Account: "dev", Region: "eu-west-1"},
	))

	summaries := client.GetAll(ctx)
	require.Equal(t, []models.ClusterSummary{
		{Name: "batch", Account: "dev", Region: "eu-west-1"},
		{Name: "api", Account: "prod", Region: "us-west-2"},
		{Name: "web", Account: "prod", Region: "us-west-2", Arn: "arn:aws:ecs:us-west-2:1:cluster/web"},
	}, summaries)

	require.Equal(t, summaries, client.GetAll(ctx))
}

func TestGetAllEmpty(t *testing.T) {
	client := NewClusterCacheClient(cachestore.NewMemoryStore("test", 0))

	summaries := client.GetAll(context.Background())
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestGetAllStoreError(t *testing.T) {
	client := NewClusterCacheClient(brokenStore{})

	summaries := client.GetAll(context.Background())
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestGetAllSkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStore("test", 0)

	require.Nil(t, store.Put(ctx, ClustersNamespace,
		cachestore.Record{ID: "a-good", Attributes: map[string]any{"account": "prod", "region": "us-west-2", "clusterName": "good"}},
		cachestore.Record{ID: "b-no-account", Attributes: map[string]any{"region": "us-west-2", "clusterName": "x"}},
		cachestore.Record{ID: "c-no-region", Attributes: map[string]any{"account": "prod", "clusterName": "x"}},
		cachestore.Record{ID: "d-no-name", Attributes: map[string]any{"account": "prod", "region": "us-west-2"}},
		cachestore.Record{ID: "e-bad-type", Attributes: map[string]any{"account": "prod", "region": "us-west-2", "clusterName": 42}},
		cachestore.Record{ID: "f-empty", Attributes: map[string]any{"account": "", "region": "us-west-2", "clusterName": "x"}},
	))

	skippedBefore := testutil.ToFloat64(skippedRecords.WithLabelValues(ClustersNamespace))

	summaries := NewClusterCacheClient(store).GetAll(ctx)
	require.Equal(t, []models.ClusterSummary{
		{Name: "good", Account: "prod", Region: "us-west-2"},
	}, summaries)
	require.Equal(t, 5.0, testutil.ToFloat64(skippedRecords.WithLabelValues(ClustersNamespace))-skippedBefore)
}

func TestPutRejectsIncompleteSummaries(t *testing.T) {
	client := NewClusterCacheClient(cachestore.NewMemoryStore("test", 0))

	err := client.Put(context.Background(), models.ClusterSummary{Name: "web", Account: "prod"})
	require.NotNil(t, err)
	require.Empty(t, client.GetAll(context.Background()))
}

func TestClusterKey(t *testing.T) {
	key := ClusterKey("prod", "us-west-2", "web")
	require.Equal(t, "ecs;ecsClusters;prod;us-west-2;web", key)

	account, region, name, ok := ParseClusterKey(key)
	require.True(t, ok)
	require.Equal(t, "prod", account)
	require.Equal(t, "us-west-2", region)
	require.Equal(t, "web", name)

	tests := []string{
		"",
		"ecs;ecsClusters;prod;us-west-2",
		"aws;ecsClusters;prod;us-west-2;web",
		"ecs;ecsServices;prod;us-west-2;web",
		"ecs;ecsClusters;;us-west-2;web",
	}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, _, _, ok := ParseClusterKey(key)
			require.False(t, ok)
		})
	}
}
