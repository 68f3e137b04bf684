package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/spechtlabs/ecsview/pkg/ecs/provider"
	"github.com/spechtlabs/ecsview/pkg/models"
)

// getClusters returns every cached ECS cluster
// @Summary       List cached ECS clusters
// @Description   Lists every ECS cluster known to the cache, across all accounts and regions
// @Tags          ECS
// @Produce       application/json
// @Success       200         {object}  models.ClusterListResponse  "The cached clusters"
// @Router        /ecs/ecsClusters [get]
func (s *ViewServer) getClusters(ct *gin.Context) {
	ctx, span := s.tracer.Start(ct.Request.Context(), "ViewServer.getClusters")
	defer span.End()

	summaries := s.viewer.GetAllClusters(ctx)
	span.SetAttributes(attribute.Int("ecs.clusters", len(summaries)))

	ct.JSON(http.StatusOK, models.NewClusterListResponse(summaries...))
}

// getClusterDescriptions describes the cached clusters of one account and region
// @Summary       Describe the ECS clusters of an account and region
// @Description   Enriches every cached cluster of the account and region with live data from the ECS API.
// @Description   Clusters whose describe batch failed are left out of the response.
// @Tags          ECS
// @Produce       application/json
// @Param         account     path      string  true   "Configured account name"
// @Param         region      path      string  true   "AWS region"               example(us-west-2)
// @Param         include     query     string  false  "Comma separated additional fields (ATTACHMENTS, CONFIGURATIONS, SETTINGS, STATISTICS, TAGS)"
// @Success       200         {object}  models.ClusterDetailListResponse  "The described clusters"
// @Failure       400         {object}  models.ErrorResponse              "Bad Request - Account is not enabled for ECS, region not enabled or unknown include field"
// @Failure       404         {object}  models.ErrorResponse              "Not Found - Account is not configured"
// @Failure       500         {object}  models.ErrorResponse              "Internal Server Error - No ECS client could be built"
// @Router        /ecs/ecsClusterDescriptions/{account}/{region} [get]
func (s *ViewServer) getClusterDescriptions(ct *gin.Context) {
	ctx, span := s.tracer.Start(ct.Request.Context(), "ViewServer.getClusterDescriptions")
	defer span.End()

	account := ct.Param("account")
	region := ct.Param("region")
	span.SetAttributes(
		attribute.String("ecs.account", account),
		attribute.String("ecs.region", region),
	)

	include, err := provider.ParseInclude(ct.QueryArray("include")...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		describeRequests.WithLabelValues("client_error").Inc()
		writeHumaneError(ct, err)
		return
	}

	details, err := s.viewer.GetAllClusterDetails(ctx, account, region, include...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		status := writeHumaneError(ct, err)
		outcome := "error"
		if status < http.StatusInternalServerError {
			outcome = "client_error"
		}
		describeRequests.WithLabelValues(outcome).Inc()

		otelzap.L().WithError(err).ErrorContext(ctx, "failed to describe clusters",
			zap.String("account", account),
			zap.String("region", region),
			zap.Int("status", status),
		)
		return
	}

	describeRequests.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("ecs.details", len(details)))
	ct.JSON(http.StatusOK, models.NewClusterDetailListResponse(details...))
}
