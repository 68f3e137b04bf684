package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/spechtlabs/ecsview/pkg/cache"
	ecscache "github.com/spechtlabs/ecsview/pkg/ecs/cache"
	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadSeedFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeSeedFile(t, `
clusters:
  - account: prod
    region: us-west-2
    name: payments
    arn: arn:aws:ecs:us-west-2:111111111111:cluster/payments
  - account: prod
    region: eu-central-1
    name: search
`)
		summaries, err := readSeedFile(path)
		require.Nil(t, err)
		require.Equal(t, []ecsmodels.ClusterSummary{
			{Account: "prod", Region: "us-west-2", Name: "payments", Arn: "arn:aws:ecs:us-west-2:111111111111:cluster/payments"},
			{Account: "prod", Region: "eu-central-1", Name: "search"},
		}, summaries)
	})

	t.Run("json", func(t *testing.T) {
		path := writeSeedFile(t, `{"clusters":[{"account":"prod","region":"us-west-2","name":"payments"}]}`)
		summaries, err := readSeedFile(path)
		require.Nil(t, err)
		require.Len(t, summaries, 1)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeSeedFile(t, "clusters:\n  - account: prod\n    region: us-west-2\n    cluster: payments\n")
		_, err := readSeedFile(path)
		require.NotNil(t, err)
		require.Equal(t, "failed to parse seed file", err.Error())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NotNil(t, err)
		require.Equal(t, "failed to read seed file", err.Error())
	})
}

func TestSeedStore(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(cache.DefaultPrefix, 0)

	summaries := []ecsmodels.ClusterSummary{
		{Account: "prod", Region: "us-west-2", Name: "search"},
		{Account: "prod", Region: "us-west-2", Name: "payments"},
	}
	require.Nil(t, seedStore(ctx, store, summaries))

	got := ecscache.NewClusterCacheClient(store).GetAll(ctx)
	require.ElementsMatch(t, summaries, got)

	err := seedStore(ctx, store, []ecsmodels.ClusterSummary{{Account: "prod", Name: "no-region"}})
	require.NotNil(t, err)
	require.Equal(t, "failed to seed the cluster cache", err.Error())
}

func TestRunSeedWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(viper.Reset)

	viper.Set("cache.driver", string(cache.RedisDriver))
	viper.Set("cache.prefix", "seedtest")
	viper.Set("cache.redis.address", mr.Addr())

	path := writeSeedFile(t, "clusters:\n  - account: prod\n    region: us-west-2\n    name: payments\n")
	count, err := runSeed(context.Background(), path)
	require.Nil(t, err)
	require.Equal(t, 1, count)

	members, mErr := mr.ZMembers("seedtest:" + ecscache.ClustersNamespace)
	require.NoError(t, mErr)
	require.Equal(t, []string{ecscache.ClusterKey("prod", "us-west-2", "payments")}, members)
}
