package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
	"github.com/spechtlabs/ecsview/pkg/models"
)

func useTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("TERM", "dumb")
	viper.Set("server.host", srv.URL)
	viper.Set("output.quiet", true)
	viper.Set("api.retryDelay", time.Millisecond)
	viper.Set("api.maxAttempts", 3)
	t.Cleanup(func() {
		viper.Set("server.host", nil)
		viper.Set("output.quiet", nil)
		viper.Set("api.retryDelay", nil)
		viper.Set("api.maxAttempts", nil)
		viper.Set("output.format", nil)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetServerAddr(t *testing.T) {
	t.Cleanup(func() {
		viper.Set("server.host", nil)
		viper.Set("server.port", nil)
	})

	tests := []struct {
		host string
		port int
		want string
	}{
		{host: "localhost", port: 8080, want: "http://localhost:8080"},
		{host: "ecsview.internal", port: 443, want: "https://ecsview.internal:443"},
		{host: "https://ecsview.internal", port: 8443, want: "https://ecsview.internal:8443"},
		{host: "http://127.0.0.1:9000/", port: 8080, want: "http://127.0.0.1:9000"},
	}

	for _, tc := range tests {
		t.Run(tc.host, func(t *testing.T) {
			viper.Set("server.host", tc.host)
			viper.Set("server.port", tc.port)
			require.Equal(t, tc.want, getServerAddr())
		})
	}
}

func TestClusterDescriptionsURI(t *testing.T) {
	require.Equal(t, "/ecs/ecsClusters", clustersURI())
	require.Equal(t, "/ecs/ecsClusterDescriptions/prod/us-west-2", clusterDescriptionsURI("prod", "us-west-2", nil))
	require.Equal(t, "/ecs/ecsClusterDescriptions/team%2Fa/us-west-2?include=TAGS%2CSETTINGS",
		clusterDescriptionsURI("team/a", "us-west-2", []string{"TAGS", "SETTINGS"}))
}

func TestDoRequestAndDecode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		useTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/ecs/ecsClusters" {
				http.NotFound(w, r)
				return
			}
			writeJSON(w, http.StatusOK, models.NewClusterListResponse(ecsmodels.ClusterSummary{Name: "payments", Account: "prod", Region: "us-west-2"}))
		})

		resp, status, err := doRequestAndDecode[models.ClusterListResponse](context.Background(), http.MethodGet, clustersURI(), nil)
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Items, 1)
		require.Equal(t, "payments", resp.Items[0].Name)
	})

	t.Run("api error keeps message and advice", func(t *testing.T) {
		useTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("no credentials configured for account \"dev\"", nil, "add the account to the configuration"))
		})

		_, status, err := doRequestAndDecode[models.ClusterDetailListResponse](context.Background(), http.MethodGet, clusterDescriptionsURI("dev", "us-west-2", nil), nil)
		require.NotNil(t, err)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "HTTP 404", err.Error())

		cause, ok := err.Cause().(humane.Error)
		require.True(t, ok)
		require.Equal(t, "no credentials configured for account \"dev\"", cause.Error())
		require.Equal(t, []string{"add the account to the configuration"}, cause.Advice())
	})

	t.Run("non json error", func(t *testing.T) {
		useTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		})

		_, status, err := doRequestAndDecode[models.ClusterListResponse](context.Background(), http.MethodGet, clustersURI(), nil)
		require.NotNil(t, err)
		require.Equal(t, http.StatusBadGateway, status)
		require.Equal(t, "HTTP 502: upstream exploded", err.Error())
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		viper.Set("server.host", srv.URL)
		t.Cleanup(func() { viper.Set("server.host", nil) })
		srv.Close()

		_, status, err := doRequestAndDecode[models.ClusterListResponse](context.Background(), http.MethodGet, clustersURI(), nil)
		require.NotNil(t, err)
		require.Equal(t, 0, status)
		require.Equal(t, "failed to perform request", err.Error())
	})
}

func TestIsRetryable(t *testing.T) {
	require.True(t, isRetryable(0))
	require.True(t, isRetryable(http.StatusTooManyRequests))
	require.True(t, isRetryable(http.StatusInternalServerError))
	require.True(t, isRetryable(http.StatusServiceUnavailable))
	require.False(t, isRetryable(http.StatusBadRequest))
	require.False(t, isRetryable(http.StatusNotFound))
}

func TestClustersCommand(t *testing.T) {
	var calls atomic.Int32
	useTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("warming up", nil))
			return
		}
		writeJSON(w, http.StatusOK, models.NewClusterListResponse(
			ecsmodels.ClusterSummary{Name: "payments", Account: "prod", Region: "us-west-2"},
		))
	})
	viper.Set("output.format", "json")

	var out bytes.Buffer
	cmdClusters.SetOut(&out)
	t.Cleanup(func() { cmdClusters.SetOut(nil) })

	require.NoError(t, cmdClusters.RunE(cmdClusters, nil))
	require.Equal(t, int32(2), calls.Load())

	var items []ecsmodels.ClusterSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Equal(t, []ecsmodels.ClusterSummary{{Name: "payments", Account: "prod", Region: "us-west-2"}}, items)
}

func TestClusterDetailsCommandDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	var gotQuery atomic.Value
	useTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotQuery.Store(r.URL.RawQuery)
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("account \"legacy\" cannot be used for ECS", nil))
	})

	require.NoError(t, cmdClusterDetails.Flags().Set("account", "legacy"))
	require.NoError(t, cmdClusterDetails.Flags().Set("region", "us-west-2"))
	require.NoError(t, cmdClusterDetails.Flags().Set("include", "TAGS"))
	t.Cleanup(func() {
		_ = cmdClusterDetails.Flags().Set("account", "")
		_ = cmdClusterDetails.Flags().Set("region", "")
	})

	err := cmdClusterDetails.RunE(cmdClusterDetails, nil)
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "include=TAGS", gotQuery.Load())
}
