// Package provider answers which ECS clusters exist for an account and
// region by enriching cached cluster summaries with live DescribeClusters
// data.
//
// The describe API accepts at most MaxBatchSize clusters per call, so the
// cached names are partitioned into batches. Each batch succeeds or fails on
// its own: a failed batch is logged, counted and dropped while the remaining
// batches still contribute to the result. Only configuration problems, an
// unknown account or credentials that cannot be used for ECS, fail the whole
// request, and they do so before any remote call is made.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/spechtlabs/ecsview/pkg/credentials"
	"github.com/spechtlabs/ecsview/pkg/ecs/client"
	"github.com/spechtlabs/ecsview/pkg/ecs/models"
)

// MaxBatchSize is the largest number of clusters a single DescribeClusters call accepts.
const MaxBatchSize = 100

// SummarySource lists the cached cluster summaries.
type SummarySource interface {
	GetAll(ctx context.Context) []models.ClusterSummary
}

// ClusterProvider serves cluster summaries and live cluster details.
type ClusterProvider struct {
	source   SummarySource
	resolver credentials.Resolver
	factory  client.Factory

	concurrency int
	tracer      trace.Tracer
}

// NewClusterProvider creates a provider on top of the cache, the credential resolver and the client factory.
func NewClusterProvider(source SummarySource, resolver credentials.Resolver, factory client.Factory, opts ...Option) *ClusterProvider {
	p := &ClusterProvider{
		source:      source,
		resolver:    resolver,
		factory:     factory,
		concurrency: 1,
		tracer:      defaultTracer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// GetAllClusters returns every cached cluster summary.
func (p *ClusterProvider) GetAllClusters(ctx context.Context) []models.ClusterSummary {
	return p.source.GetAll(ctx)
}

// GetAllClusterDetails describes every cached cluster of account in region.
//
// The result only ever contains clusters that are cached for the account and
// region. Failed batches are dropped, so the result may be a strict subset of
// the cached clusters. An error is returned only when the account is unknown,
// cannot be used for ECS or no client can be built for it.
func (p *ClusterProvider) GetAllClusterDetails(ctx context.Context, account, region string, include ...types.ClusterField) ([]models.ClusterDetail, humane.Error) {
	ctx, span := p.tracer.Start(ctx, "ClusterProvider.GetAllClusterDetails")
	defer span.End()

	span.SetAttributes(
		attribute.String("ecs.account", account),
		attribute.String("ecs.region", region),
	)

	names := clusterNames(p.source.GetAll(ctx), account, region)

	api, err := p.clientFor(ctx, account, region)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	batches := partition(names, MaxBatchSize)
	span.SetAttributes(
		attribute.Int("ecs.clusters", len(names)),
		attribute.Int("ecs.batches", len(batches)),
	)

	details := p.describeAll(ctx, api, account, region, batches, include)
	span.SetAttributes(attribute.Int("ecs.details", len(details)))

	return details, nil
}

func (p *ClusterProvider) clientFor(ctx context.Context, account, region string) (client.ClusterAPI, humane.Error) {
	creds, err := p.resolver.ResolveECS(ctx, account)
	if err != nil {
		otelzap.L().WithError(err).ErrorContext(ctx, "Invalid credentials",
			zap.String("account", account),
			zap.String("region", region),
		)
		return nil, err
	}

	api, err := p.factory.ClientFor(ctx, creds, region, true)
	if err != nil {
		otelzap.L().WithError(err).ErrorContext(ctx, "Failed to build ECS client",
			zap.String("account", account),
			zap.String("region", region),
		)
		return nil, err
	}

	if api == nil {
		return nil, humane.New(fmt.Sprintf("no ECS client available for %s:%s", account, region))
	}

	return api, nil
}

// describeAll runs one describe call per batch and merges the results in batch order.
func (p *ClusterProvider) describeAll(ctx context.Context, api client.ClusterAPI, account, region string, batches [][]string, include []types.ClusterField) []models.ClusterDetail {
	results := make([][]models.ClusterDetail, len(batches))

	if p.concurrency <= 1 || len(batches) <= 1 {
		for i, batch := range batches {
			if ctx.Err() != nil {
				p.logAbandoned(ctx, account, region, len(batches)-i)
				break
			}
			results[i] = p.describeBatch(ctx, api, account, region, i, batch, include)
		}
	} else {
		sem := semaphore.NewWeighted(int64(p.concurrency))
		var eg errgroup.Group

		for i, batch := range batches {
			if ctx.Err() != nil {
				p.logAbandoned(ctx, account, region, len(batches)-i)
				break
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				p.logAbandoned(ctx, account, region, len(batches)-i)
				break
			}

			eg.Go(func() error {
				defer sem.Release(1)
				results[i] = p.describeBatch(ctx, api, account, region, i, batch, include)
				return nil
			})
		}

		// batch failures are logged and dropped, never returned
		_ = eg.Wait()
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}

	details := make([]models.ClusterDetail, 0, total)
	for _, r := range results {
		details = append(details, r...)
	}

	return details
}

// describeBatch describes one batch. Any failure drops the batch and returns nil.
func (p *ClusterProvider) describeBatch(ctx context.Context, api client.ClusterAPI, account, region string, index int, names []string, include []types.ClusterField) []models.ClusterDetail {
	ctx, span := p.tracer.Start(ctx, "ClusterProvider.describeBatch")
	defer span.End()

	span.SetAttributes(
		attribute.Int("ecs.batch.index", index),
		attribute.Int("ecs.batch.size", len(names)),
	)

	fields := []zap.Field{
		zap.String("account", account),
		zap.String("region", region),
		zap.Int("batch", index),
		zap.Int("batch_size", len(names)),
	}

	start := time.Now()
	out, err := api.DescribeClusters(ctx, &ecs.DescribeClustersInput{
		Clusters: names,
		Include:  include,
	})
	describeBatchDuration.WithLabelValues(account, region).Observe(time.Since(start).Seconds())

	if err != nil {
		describeBatches.WithLabelValues(account, region, outcomeFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		otelzap.L().WithError(err).ErrorContext(ctx, "DescribeClusters call failed, dropping batch", fields...)
		return nil
	}

	if out == nil {
		describeBatches.WithLabelValues(account, region, outcomeEmpty).Inc()
		otelzap.L().WarnContext(ctx, "DescribeClusters returned an empty response. Please check your inputs (account, region and cluster list)", fields...)
		return nil
	}

	outcome := outcomeSucceeded
	if len(out.Failures) > 0 {
		outcome = outcomePartial
		describeItemFailures.WithLabelValues(account, region).Add(float64(len(out.Failures)))
		otelzap.L().WarnContext(ctx, "DescribeClusters responded with failure(s)",
			append(fields, zap.Any("failures", models.NewDescribeFailures(out.Failures)))...,
		)
	}
	describeBatches.WithLabelValues(account, region, outcome).Inc()

	requested := make(map[string]struct{}, len(names))
	for _, name := range names {
		requested[name] = struct{}{}
	}

	details := make([]models.ClusterDetail, 0, len(out.Clusters))
	for _, cluster := range out.Clusters {
		if _, ok := requested[aws.ToString(cluster.ClusterName)]; !ok {
			otelzap.L().DebugContext(ctx, "discarding unrequested cluster from DescribeClusters response",
				append(fields, zap.String("cluster", aws.ToString(cluster.ClusterName)))...,
			)
			continue
		}

		details = append(details, models.NewClusterDetail(account, region, cluster))
	}

	span.SetAttributes(attribute.Int("ecs.batch.details", len(details)))
	return details
}

func (p *ClusterProvider) logAbandoned(ctx context.Context, account, region string, remaining int) {
	otelzap.L().WithError(ctx.Err()).WarnContext(ctx, "request cancelled, not dispatching remaining DescribeClusters batches",
		zap.String("account", account),
		zap.String("region", region),
		zap.Int("remaining_batches", remaining),
	)
}

// clusterNames returns the names of the summaries that exactly match account and region.
func clusterNames(summaries []models.ClusterSummary, account, region string) []string {
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s.Account == account && s.Region == region {
			names = append(names, s.Name)
		}
	}
	return names
}

// partition splits names into consecutive batches of at most size names.
func partition(names []string, size int) [][]string {
	if size < 1 {
		size = 1
	}

	batches := make([][]string, 0, (len(names)+size-1)/size)
	batch := make([]string, 0, min(size, len(names)))

	for _, name := range names {
		batch = append(batch, name)
		if len(batch) == size {
			batches = append(batches, batch)
			batch = make([]string, 0, size)
		}
	}

	if len(batch) > 0 {
		batches = append(batches, batch)
	}

	return batches
}
