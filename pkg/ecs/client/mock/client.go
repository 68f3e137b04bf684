package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/sierrasoftworks/humane-errors-go"

	"github.com/spechtlabs/ecsview/pkg/credentials"
	"github.com/spechtlabs/ecsview/pkg/ecs/client"
	"github.com/spechtlabs/ecsview/pkg/test"
)

// MockClusterAPI is a function-field implementation of client.ClusterAPI.
// Every call records a copy of the requested cluster names.
type MockClusterAPI struct {
	test.CallTracker

	DescribeClustersFn func(ctx context.Context, params *ecs.DescribeClustersInput) (*ecs.DescribeClustersOutput, error)
}

var _ client.ClusterAPI = &MockClusterAPI{}

func (m *MockClusterAPI) DescribeClusters(ctx context.Context, params *ecs.DescribeClustersInput, _ ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error) {
	defer m.Enter("DescribeClusters")()
	m.Record("DescribeClusters", append([]string(nil), params.Clusters...))

	if m.DescribeClustersFn != nil {
		return m.DescribeClustersFn(ctx, params)
	}
	return &ecs.DescribeClustersOutput{}, nil
}

// Batches returns the cluster names of every DescribeClusters call in call order.
func (m *MockClusterAPI) Batches() [][]string {
	calls := m.Args("DescribeClusters")
	batches := make([][]string, 0, len(calls))
	for _, args := range calls {
		batches = append(batches, args[0].([]string))
	}
	return batches
}

// MockFactory is a function-field implementation of client.Factory.
type MockFactory struct {
	test.CallTracker

	ClientForFn func(ctx context.Context, creds *credentials.ECSCredentials, region string, mutating bool) (client.ClusterAPI, humane.Error)
}

var _ client.Factory = &MockFactory{}

func (m *MockFactory) ClientFor(ctx context.Context, creds *credentials.ECSCredentials, region string, mutating bool) (client.ClusterAPI, humane.Error) {
	m.Record("ClientFor", creds, region, mutating)
	if m.ClientForFn != nil {
		return m.ClientForFn(ctx, creds, region, mutating)
	}
	return nil, nil
}
