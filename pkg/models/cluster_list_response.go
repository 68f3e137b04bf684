package models

import (
	ecsmodels "github.com/spechtlabs/ecsview/pkg/ecs/models"
)

// ClusterListResponse lists cached ECS clusters.
// @Description Contains every cached ECS cluster
type ClusterListResponse struct {
	Items []ecsmodels.ClusterSummary `json:"items"`
}

// ClusterDetailListResponse lists live ECS cluster descriptions.
// @Description Contains the live descriptions of the ECS clusters of one account and region
type ClusterDetailListResponse struct {
	Items []ecsmodels.ClusterDetail `json:"items"`
}

// NewClusterListResponse wraps summaries. A nil slice is rendered as an empty list.
func NewClusterListResponse(items ...ecsmodels.ClusterSummary) ClusterListResponse {
	if items == nil {
		items = []ecsmodels.ClusterSummary{}
	}
	return ClusterListResponse{Items: items}
}

// NewClusterDetailListResponse wraps details. A nil slice is rendered as an empty list.
func NewClusterDetailListResponse(items ...ecsmodels.ClusterDetail) ClusterDetailListResponse {
	if items == nil {
		items = []ecsmodels.ClusterDetail{}
	}
	return ClusterDetailListResponse{Items: items}
}
