// Package client builds account and region scoped ECS API clients.
package client

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/sierrasoftworks/humane-errors-go"

	"github.com/spechtlabs/ecsview/pkg/credentials"
)

// ClusterAPI is the subset of the ECS API used to describe clusters.
type ClusterAPI interface {
	DescribeClusters(ctx context.Context, params *ecs.DescribeClustersInput, optFns ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error)
}

var _ ClusterAPI = &ecs.Client{}

// Factory hands out ClusterAPI clients scoped to an account and a region.
type Factory interface {
	// ClientFor returns a client for creds in region. A mutating client is
	// tuned for calls that must not be retried aggressively.
	ClientFor(ctx context.Context, creds *credentials.ECSCredentials, region string, mutating bool) (ClusterAPI, humane.Error)
}

// ErrRegionNotEnabled is the cause of factory errors for regions the account does not enable.
var ErrRegionNotEnabled = errors.New("region not enabled")
