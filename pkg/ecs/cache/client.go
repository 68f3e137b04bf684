// Package cache is the read side of the ECS cluster cache. It translates the
// opaque records of the ecsClusters namespace into typed cluster summaries.
package cache

import (
	"context"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.uber.org/zap"

	cachestore "github.com/spechtlabs/ecsview/pkg/cache"
	"github.com/spechtlabs/ecsview/pkg/ecs/models"
)

// ClusterCacheClient reads ECS cluster summaries from a cache store.
type ClusterCacheClient struct {
	store cachestore.Store
}

// NewClusterCacheClient creates a client reading from store.
func NewClusterCacheClient(store cachestore.Store) *ClusterCacheClient {
	return &ClusterCacheClient{store: store}
}

// GetAll returns every well-formed cluster summary in store enumeration order.
//
// It never fails. A store error is logged and yields an empty slice; records
// lacking a string account, region or clusterName are skipped.
func (c *ClusterCacheClient) GetAll(ctx context.Context) []models.ClusterSummary {
	records, err := c.store.GetAll(ctx, ClustersNamespace)
	if err != nil {
		otelzap.L().WithError(err).ErrorContext(ctx, "failed to read ECS clusters from cache", zap.String("namespace", ClustersNamespace))
		return []models.ClusterSummary{}
	}

	summaries := make([]models.ClusterSummary, 0, len(records))
	for _, record := range records {
		summary, ok := summaryFromRecord(record)
		if !ok {
			skippedRecords.WithLabelValues(ClustersNamespace).Inc()
			otelzap.L().DebugContext(ctx, "skipping malformed ECS cluster record", zap.String("id", record.ID))
			continue
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// Put writes cluster summaries using the ingestion key and attribute layout.
func (c *ClusterCacheClient) Put(ctx context.Context, summaries ...models.ClusterSummary) humane.Error {
	records := make([]cachestore.Record, 0, len(summaries))
	for _, s := range summaries {
		if s.Account == "" || s.Region == "" || s.Name == "" {
			return humane.New("cluster record requires an account, a region and a name",
				"check the entry for cluster '"+s.Name+"' in account '"+s.Account+"'",
			)
		}

		records = append(records, cachestore.Record{
			ID:         ClusterKey(s.Account, s.Region, s.Name),
			Attributes: RecordAttributes(s),
		})
	}

	return c.store.Put(ctx, ClustersNamespace, records...)
}

// RecordAttributes returns the cache attributes of a summary.
func RecordAttributes(s models.ClusterSummary) map[string]any {
	attributes := map[string]any{
		AccountAttribute:     s.Account,
		RegionAttribute:      s.Region,
		ClusterNameAttribute: s.Name,
	}

	if s.Arn != "" {
		attributes[ClusterArnAttribute] = s.Arn
	}

	return attributes
}

func summaryFromRecord(record cachestore.Record) (models.ClusterSummary, bool) {
	account, ok := stringAttribute(record.Attributes, AccountAttribute)
	if !ok {
		return models.ClusterSummary{}, false
	}

	region, ok := stringAttribute(record.Attributes, RegionAttribute)
	if !ok {
		return models.ClusterSummary{}, false
	}

	name, ok := stringAttribute(record.Attributes, ClusterNameAttribute)
	if !ok {
		return models.ClusterSummary{}, false
	}

	// the arn is optional
	arn, _ := stringAttribute(record.Attributes, ClusterArnAttribute)

	return models.ClusterSummary{
		Name:    name,
		Account: account,
		Region:  region,
		Arn:     arn,
	}, true
}

func stringAttribute(attributes map[string]any, key string) (string, bool) {
	value, found := attributes[key]
	if !found {
		return "", false
	}

	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}

	return s, true
}
