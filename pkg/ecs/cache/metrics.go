package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

var skippedRecords = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ecsview_cache_records_skipped_total",
		Help: "Total number of malformed cluster records skipped while reading the cache",
	},
	[]string{"namespace"},
)

func init() {
	prometheus.MustRegister(skippedRecords)
}
