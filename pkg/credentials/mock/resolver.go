package mock

import (
	"context"

	"github.com/sierrasoftworks/humane-errors-go"

	"github.com/spechtlabs/ecsview/pkg/credentials"
	"github.com/spechtlabs/ecsview/pkg/test"
)

// MockResolver is a function-field implementation of credentials.Resolver.
type MockResolver struct {
	test.CallTracker

	ResolveECSFn func(ctx context.Context, account string) (*credentials.ECSCredentials, humane.Error)
}

var _ credentials.Resolver = &MockResolver{}

func (m *MockResolver) ResolveECS(ctx context.Context, account string) (*credentials.ECSCredentials, humane.Error) {
	m.Record("ResolveECS", account)
	if m.ResolveECSFn != nil {
		return m.ResolveECSFn(ctx, account)
	}
	return nil, nil
}
