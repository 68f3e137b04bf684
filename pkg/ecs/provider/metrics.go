package provider

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSucceeded = "succeeded"
	outcomePartial   = "partial"
	outcomeFailed    = "failed"
	outcomeEmpty     = "empty"
)

var (
	describeBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecsview_describe_batches_total",
			Help: "Total number of DescribeClusters batches by outcome",
		},
		[]string{
			"account",
			"region",
			"outcome",
		},
	)

	describeItemFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecsview_describe_item_failures_total",
			Help: "Total number of per-cluster failures reported inline by DescribeClusters",
		},
		[]string{
			"account",
			"region",
		},
	)

	describeBatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecsview_describe_batch_duration_seconds",
			Help:    "Duration of DescribeClusters calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{
			"account",
			"region",
		},
	)
)

func init() {
	prometheus.MustRegister(
		describeBatches,
		describeItemFailures,
		describeBatchDuration,
	)
}
