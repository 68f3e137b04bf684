// Package models contains the ECS cluster data types returned by the cluster view.
package models

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// ClusterSummary is the cached identity of an ECS cluster.
// @Description Cached identity of an ECS cluster
type ClusterSummary struct {
	// Name of the cluster
	// example: production
	Name string `json:"name"`

	// Account the cluster belongs to
	// example: prod-account
	Account string `json:"account"`

	// Region the cluster lives in
	// example: us-west-2
	Region string `json:"region"`

	// Amazon Resource Name of the cluster
	// example: arn:aws:ecs:us-west-2:123456789012:cluster/production
	Arn string `json:"arn,omitempty"`
}

// ClusterDetail is the live description of an ECS cluster as returned by the describe API.
// @Description Live description of an ECS cluster
type ClusterDetail struct {
	ClusterSummary

	// Status of the cluster
	// example: ACTIVE
	Status string `json:"status,omitempty"`

	// Number of container instances registered to the cluster
	RegisteredContainerInstancesCount int32 `json:"registeredContainerInstancesCount"`

	// Number of tasks in the RUNNING state
	RunningTasksCount int32 `json:"runningTasksCount"`

	// Number of tasks in the PENDING state
	PendingTasksCount int32 `json:"pendingTasksCount"`

	// Number of services in the ACTIVE state
	ActiveServicesCount int32 `json:"activeServicesCount"`

	// Capacity providers associated with the cluster
	CapacityProviders []string `json:"capacityProviders,omitempty"`

	// Resource tags, present when TAGS was included
	Tags map[string]string `json:"tags,omitempty"`

	// Additional statistics, present when STATISTICS was included
	Statistics map[string]string `json:"statistics,omitempty"`

	// Cluster settings, present when SETTINGS was included
	Settings map[string]string `json:"settings,omitempty"`

	// Status of capacity provider attachments, present when ATTACHMENTS was included
	AttachmentsStatus string `json:"attachmentsStatus,omitempty"`
}

// DescribeFailure is a per-cluster failure reported inline by the describe API.
type DescribeFailure struct {
	Arn    string `json:"arn,omitempty"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// NewClusterDetail converts an SDK cluster into a ClusterDetail owned by the given account and region.
func NewClusterDetail(account, region string, cluster types.Cluster) ClusterDetail {
	detail := ClusterDetail{
		ClusterSummary: ClusterSummary{
			Name:    aws.ToString(cluster.ClusterName),
			Account: account,
			Region:  region,
			Arn:     aws.ToString(cluster.ClusterArn),
		},
		Status:                            aws.ToString(cluster.Status),
		RegisteredContainerInstancesCount: cluster.RegisteredContainerInstancesCount,
		RunningTasksCount:                 cluster.RunningTasksCount,
		PendingTasksCount:                 cluster.PendingTasksCount,
		ActiveServicesCount:               cluster.ActiveServicesCount,
		AttachmentsStatus:                 aws.ToString(cluster.AttachmentsStatus),
	}

	if len(cluster.CapacityProviders) > 0 {
		detail.CapacityProviders = append([]string(nil), cluster.CapacityProviders...)
	}

	if len(cluster.Tags) > 0 {
		detail.Tags = make(map[string]string, len(cluster.Tags))
		for _, tag := range cluster.Tags {
			detail.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}

	if len(cluster.Statistics) > 0 {
		detail.Statistics = make(map[string]string, len(cluster.Statistics))
		for _, stat := range cluster.Statistics {
			detail.Statistics[aws.ToString(stat.Name)] = aws.ToString(stat.Value)
		}
	}

	if len(cluster.Settings) > 0 {
		detail.Settings = make(map[string]string, len(cluster.Settings))
		for _, setting := range cluster.Settings {
			detail.Settings[string(setting.Name)] = aws.ToString(setting.Value)
		}
	}

	return detail
}

// NewDescribeFailures converts the inline failures of a describe response.
func NewDescribeFailures(failures []types.Failure) []DescribeFailure {
	out := make([]DescribeFailure, 0, len(failures))
	for _, f := range failures {
		out = append(out, DescribeFailure{
			Arn:    aws.ToString(f.Arn),
			Reason: aws.ToString(f.Reason),
			Detail: aws.ToString(f.Detail),
		})
	}
	return out
}
