package api

import (
	"context"
	"net/http"

	// gin
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	// Misc
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/sierrasoftworks/humane-errors-go"

	// o11y
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	// ecsview
	"github.com/spechtlabs/ecsview/internal/utils"
	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
	_ "github.com/spechtlabs/ecsview/pkg/service/docs"
)

const (
	// EcsRoute is the base path of the ECS cluster view.
	EcsRoute = "/ecs"
	// ClustersRoute lists the cached clusters.
	ClustersRoute = "/ecsClusters"
	// ClusterDescriptionsRoute describes the clusters of one account and region.
	ClusterDescriptionsRoute = "/ecsClusterDescriptions/:account/:region"
)

// ClusterViewer is the cluster view served by the API.
type ClusterViewer interface {
	GetAllClusters(ctx context.Context) []ecsmodels.ClusterSummary
	GetAllClusterDetails(ctx context.Context, account, region string, include ...types.ClusterField) ([]ecsmodels.ClusterDetail, humane.Error)
}

// ViewServer is the HTTP API of the ECS cluster view.
type ViewServer struct {
	// API
	router           *gin.Engine
	tracer           trace.Tracer
	sharedPrometheus *ginprometheus.Prometheus

	// Cluster view
	viewer ClusterViewer
}

// NewViewServer creates the API server with its static routes. The ECS
// routes are added with LoadEcsRoutes.
func NewViewServer(opts ...Option) *ViewServer {
	s := &ViewServer{
		router:           nil,
		tracer:           otel.Tracer("ecsview"),
		sharedPrometheus: nil,
		viewer:           nil,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.sharedPrometheus == nil {
		s.sharedPrometheus = ginprometheus.NewPrometheus("ecsview_server")
	}

	s.router = utils.NewO11yGin("ecsview_server", s.sharedPrometheus)

	s.loadStaticRoutes()
	return s
}

func (s *ViewServer) loadStaticRoutes() {
	// Swagger UI at /swagger/index.html
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
}

// LoadEcsRoutes registers the cluster view endpoints:
//
//   - GET /ecs/ecsClusters
//   - GET /ecs/ecsClusterDescriptions/:account/:region
func (s *ViewServer) LoadEcsRoutes(viewer ClusterViewer) humane.Error {
	if viewer == nil {
		return humane.New("cluster view not configured", "pass a cluster provider to LoadEcsRoutes")
	}
	s.viewer = viewer

	ecsGroup := s.router.Group(EcsRoute)
	ecsGroup.GET(ClustersRoute, s.getClusters)
	ecsGroup.GET(ClusterDescriptionsRoute, s.getClusterDescriptions)

	return nil
}

// Engine returns the underlying gin.Engine.
func (s *ViewServer) Engine() *gin.Engine { return s.router }

// Use attaches middleware to the underlying gin.Engine.
func (s *ViewServer) Use(mw ...gin.HandlerFunc) { s.router.Use(mw...) }
