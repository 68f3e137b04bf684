package client

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.uber.org/zap"

	"github.com/spechtlabs/ecsview/pkg/credentials"
)

const (
	defaultClientTTL   = 15 * time.Minute
	defaultSessionName = "ecsview"
)

// AWSFactory builds ECS clients from the AWS SDK and reuses them per
// (account, region, mutating) for the client TTL.
type AWSFactory struct {
	endpoint         string
	retryMaxAttempts int
	clientTTL        time.Duration
	sessionName      string

	clients *gocache.Cache
}

var _ Factory = &AWSFactory{}

func NewAWSFactory(opts ...Option) *AWSFactory {
	f := &AWSFactory{
		clientTTL:   defaultClientTTL,
		sessionName: defaultSessionName,
	}

	for _, opt := range opts {
		opt(f)
	}

	f.clients = gocache.New(f.clientTTL, 2*f.clientTTL)
	return f
}

func (f *AWSFactory) ClientFor(ctx context.Context, creds *credentials.ECSCredentials, region string, mutating bool) (ClusterAPI, humane.Error) {
	if creds == nil {
		return nil, humane.New("cannot build an ECS client without credentials")
	}

	if region == "" {
		return nil, humane.New(fmt.Sprintf("no region given for account %q", creds.Name()), "specify the region to query")
	}

	if !creds.SupportsRegion(region) {
		return nil, humane.Wrap(ErrRegionNotEnabled, fmt.Sprintf("region %s is not enabled for account %q", region, creds.Name()),
			fmt.Sprintf("add %s to the regions of account %q", region, creds.Name()),
		)
	}

	key := fmt.Sprintf("%s/%s/%t", creds.Name(), region, mutating)
	if cached, found := f.clients.Get(key); found {
		if api, ok := cached.(ClusterAPI); ok {
			return api, nil
		}
	}

	cfg, err := f.awsConfig(ctx, creds, region, mutating)
	if err != nil {
		return nil, err
	}

	api := ecs.NewFromConfig(cfg, func(o *ecs.Options) {
		if f.endpoint != "" {
			o.BaseEndpoint = aws.String(f.endpoint)
		}
	})

	f.clients.SetDefault(key, api)
	otelzap.L().DebugContext(ctx, "built ECS client",
		zap.String("account", creds.Name()),
		zap.String("region", region),
		zap.Bool("mutating", mutating),
	)

	return api, nil
}

func (f *AWSFactory) awsConfig(ctx context.Context, creds *credentials.ECSCredentials, region string, mutating bool) (aws.Config, humane.Error) {
	// mutating calls get the standard retryer, reads the client side rate limited adaptive one
	retryMode := aws.RetryModeAdaptive
	if mutating {
		retryMode = aws.RetryModeStandard
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithRetryMode(retryMode),
	}

	if f.retryMaxAttempts > 0 {
		loadOpts = append(loadOpts, config.WithRetryMaxAttempts(f.retryMaxAttempts))
	}

	if provider := creds.CredentialsProvider(); provider != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(provider))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, humane.Wrap(err, fmt.Sprintf("failed to load AWS configuration for account %q", creds.Name()),
			"check the AWS shared config and credentials files",
		)
	}

	if role := creds.AssumeRole(); role != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), role, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = f.sessionName
			if externalID := creds.ExternalID(); externalID != "" {
				o.ExternalID = aws.String(externalID)
			}
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return cfg, nil
}
