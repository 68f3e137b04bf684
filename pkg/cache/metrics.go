package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// undecodableRecords counts stored values that could not be decoded and were skipped on read.
var undecodableRecords = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ecsview_cache_undecodable_records_total",
		Help: "Total number of cache records skipped because their stored value could not be decoded",
	},
	[]string{
		"driver",
		"namespace",
	},
)

func init() {
	prometheus.MustRegister(undecodableRecords)
}
