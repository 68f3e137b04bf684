package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/gin-gonic/gin"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/stretchr/testify/require"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	cachestore "github.com/spechtlabs/ecsview/pkg/cache"
	"github.com/spechtlabs/ecsview/pkg/credentials"
	ecscache "github.com/spechtlabs/ecsview/pkg/ecs/cache"
	"github.com/spechtlabs/ecsview/pkg/ecs/client"
	"github.com/spechtlabs/ecsview/pkg/ecs/client/mock"
	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
	"github.com/spechtlabs/ecsview/pkg/ecs/provider"
	"github.com/spechtlabs/ecsview/pkg/models"
	"github.com/spechtlabs/ecsview/pkg/service/api"
	"github.com/spechtlabs/ecsview/pkg/test"
)

var sharedPrometheus = ginprometheus.NewPrometheus("ecsview_test")

type mockViewer struct {
	test.CallTracker

	GetAllClustersFn       func(ctx context.Context) []ecsmodels.ClusterSummary
	GetAllClusterDetailsFn func(ctx context.Context, account, region string, include ...types.ClusterField) ([]ecsmodels.ClusterDetail, humane.Error)
}

var _ api.ClusterViewer = &mockViewer{}

func (m *mockViewer) GetAllClusters(ctx context.Context) []ecsmodels.ClusterSummary {
	m.Record("GetAllClusters")
	if m.GetAllClustersFn != nil {
		return m.GetAllClustersFn(ctx)
	}
	return nil
}

func (m *mockViewer) GetAllClusterDetails(ctx context.Context, account, region string, include ...types.ClusterField) ([]ecsmodels.ClusterDetail, humane.Error) {
	m.Record("GetAllClusterDetails", account, region, include)
	if m.GetAllClusterDetailsFn != nil {
		return m.GetAllClusterDetailsFn(ctx, account, region, include...)
	}
	return nil, nil
}

func newTestServer(t *testing.T, viewer api.ClusterViewer) (*api.ViewServer, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := api.NewViewServer(api.WithPrometheusMiddleware(sharedPrometheus))
	if err := srv.LoadEcsRoutes(viewer); err != nil {
		t.Fatalf("failed to load ecs routes: %v", err)
	}

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doReq(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:golint-sl // DefaultClient is acceptable in tests
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func requireErrorMessage(t *testing.T, body []byte, want string) {
	t.Helper()
	var er models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er), string(body))
	require.Equal(t, want, er.Message)
}

func TestNewViewServer_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := api.NewViewServer(api.WithPrometheusMiddleware(sharedPrometheus))
	require.NotNil(t, s.Engine())

	require.Error(t, s.LoadEcsRoutes(nil))
	require.NoError(t, s.LoadEcsRoutes(&mockViewer{}))

	expected := map[string]bool{
		http.MethodGet + " " + api.EcsRoute + api.ClustersRoute:            false,
		http.MethodGet + " " + api.EcsRoute + api.ClusterDescriptionsRoute: false,
		http.MethodGet + " /swagger":                                      false,
		http.MethodGet + " /swagger/*any":                                 false,
	}

	for _, r := range s.Engine().Routes() {
		key := r.Method + " " + r.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}

	for route, seen := range expected {
		if !seen {
			t.Errorf("missing route %s", route)
		}
	}
}

func TestGetClusters(t *testing.T) {
	tests := []struct {
		name     string
		clusters []ecsmodels.ClusterSummary
		expected string
	}{
		{
			name:     "empty_cache",
			clusters: nil,
			expected: `{"items":[]}`,
		},
		{
			name: "clusters",
			clusters: []ecsmodels.ClusterSummary{
				{Name: "web", Account: "prod", Region: "us-west-2", Arn: "arn:aws:ecs:us-west-2:1:cluster/web"},
				{Name: "batch", Account: "dev", Region: "eu-west-1"},
			},
			expected: `{"items":[
				{"name":"web","account":"prod","region":"us-west-2","arn":"arn:aws:ecs:us-west-2:1:cluster/web"},
				{"name":"batch","account":"dev","region":"eu-west-1"}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &mockViewer{
				GetAllClustersFn: func(context.Context) []ecsmodels.ClusterSummary { return tt.clusters },
			}
			_, ts := newTestServer(t, viewer)

			resp, body := doReq(t, ts, "/ecs/ecsClusters")
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			require.JSONEq(t, tt.expected, string(body))
			require.True(t, viewer.CalledOnce("GetAllClusters"))
		})
	}
}

func TestGetClusterDescriptions(t *testing.T) {
	details := []ecsmodels.ClusterDetail{
		{ClusterSummary: ecsmodels.ClusterSummary{Name: "web", Account: "prod", Region: "us-west-2"}, Status: "ACTIVE", RunningTasksCount: 3},
	}

	tests := []struct {
		name       string
		path       string
		result     []ecsmodels.ClusterDetail
		err        humane.Error
		wantStatus int
		wantMsg    string
		wantCalled bool
	}{
		{
			name:       "success",
			path:       "/ecs/ecsClusterDescriptions/prod/us-west-2",
			result:     details,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "no_clusters",
			path:       "/ecs/ecsClusterDescriptions/prod/us-west-2",
			result:     []ecsmodels.ClusterDetail{},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "unknown_account",
			path:       "/ecs/ecsClusterDescriptions/nope/us-west-2",
			err:        humane.Wrap(credentials.ErrAccountNotFound, "no credentials configured for account \"nope\""),
			wantStatus: http.StatusNotFound,
			wantMsg:    "no credentials configured for account \"nope\"",
			wantCalled: true,
		},
		{
			name:       "not_ecs_account",
			path:       "/ecs/ecsClusterDescriptions/legacy/us-west-2",
			err:        humane.Wrap(credentials.ErrInvalidCredentials, "account \"legacy\" cannot be used for ECS"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "account \"legacy\" cannot be used for ECS",
			wantCalled: true,
		},
		{
			name:       "region_not_enabled",
			path:       "/ecs/ecsClusterDescriptions/prod/ap-south-1",
			err:        humane.Wrap(client.ErrRegionNotEnabled, "region ap-south-1 is not enabled"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "region ap-south-1 is not enabled",
			wantCalled: true,
		},
		{
			name:       "internal_error",
			path:       "/ecs/ecsClusterDescriptions/prod/us-west-2",
			err:        humane.New("failed to load AWS configuration"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "failed to load AWS configuration",
			wantCalled: true,
		},
		{
			name:       "invalid_include",
			path:       "/ecs/ecsClusterDescriptions/prod/us-west-2?include=TAGS,EVERYTHING",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "unknown include field \"EVERYTHING\"",
			wantCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &mockViewer{
				GetAllClusterDetailsFn: func(context.Context, string, string, ...types.ClusterField) ([]ecsmodels.ClusterDetail, humane.Error) {
					return tt.result, tt.err
				},
			}
			_, ts := newTestServer(t, viewer)

			resp, body := doReq(t, ts, tt.path)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			require.Equal(t, tt.wantCalled, viewer.CalledOnce("GetAllClusterDetails"))

			if tt.wantMsg != "" {
				requireErrorMessage(t, body, tt.wantMsg)
				return
			}

			var got models.ClusterDetailListResponse
			require.NoError(t, json.Unmarshal(body, &got))
			require.Equal(t, tt.result, got.Items)
		})
	}
}

func TestGetClusterDescriptions_PassesParameters(t *testing.T) {
	viewer := &mockViewer{}
	_, ts := newTestServer(t, viewer)

	resp, body := doReq(t, ts, "/ecs/ecsClusterDescriptions/prod/eu-west-1?include=tags&include=statistics")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.JSONEq(t, `{"items":[]}`, string(body))

	args := viewer.Args("GetAllClusterDetails")
	require.Len(t, args, 1)
	require.Equal(t, "prod", args[0][0])
	require.Equal(t, "eu-west-1", args[0][1])
	require.Equal(t, []types.ClusterField{types.ClusterFieldTags, types.ClusterFieldStatistics}, args[0][2])
}

func TestGetClusterDescriptions_WithProvider(t *testing.T) {
	ctx := context.Background()

	cacheClient := ecscache.NewClusterCacheClient(cachestore.NewMemoryStore("test", 0))
	for i := range 150 {
		require.Nil(t, cacheClient.Put(ctx, ecsmodels.ClusterSummary{Name: fmt.Sprintf("c-%03d", i), Account: "prod", Region: "us-west-2"}))
	}
	require.Nil(t, cacheClient.Put(ctx, ecsmodels.ClusterSummary{Name: "other", Account: "dev", Region: "us-west-2"}))

	repo, err := credentials.NewRepository(credentials.AccountConfig{Name: "prod", Type: credentials.ECSAccountType})
	require.Nil(t, err)

	ecsAPI := &mock.MockClusterAPI{
		DescribeClustersFn: func(_ context.Context, params *ecs.DescribeClustersInput) (*ecs.DescribeClustersOutput, error) {
			if params.Clusters[0] == "c-100" {
				return nil, errors.New("throttled")
			}
			out := &ecs.DescribeClustersOutput{}
			for _, name := range params.Clusters {
				out.Clusters = append(out.Clusters, types.Cluster{ClusterName: aws.String(name), Status: aws.String("ACTIVE")})
			}
			return out, nil
		},
	}
	factory := &mock.MockFactory{
		ClientForFn: func(context.Context, *credentials.ECSCredentials, string, bool) (client.ClusterAPI, humane.Error) {
			return ecsAPI, nil
		},
	}

	_, ts := newTestServer(t, provider.NewClusterProvider(cacheClient, repo, factory))

	resp, body := doReq(t, ts, "/ecs/ecsClusterDescriptions/prod/us-west-2")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got models.ClusterDetailListResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Items, 100)
	require.Equal(t, "c-000", got.Items[0].Name)
	require.Equal(t, "c-099", got.Items[99].Name)
	require.Equal(t, 2, ecsAPI.Called("DescribeClusters"))

	resp, body = doReq(t, ts, "/ecs/ecsClusterDescriptions/dev/us-west-2")
	require.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))
	require.Equal(t, 2, ecsAPI.Called("DescribeClusters"))

	resp, body = doReq(t, ts, "/ecs/ecsClusters")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list models.ClusterListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 151)
}

func TestSwaggerDocs(t *testing.T) {
	_, ts := newTestServer(t, &mockViewer{})

	resp, body := doReq(t, ts, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "/ecs/ecsClusterDescriptions/{account}/{region}")
}
