package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// describeRequests tracks cluster description requests by outcome.
var describeRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ecsview_cluster_description_requests_total",
		Help: "Total number of cluster description requests by outcome",
	},
	[]string{
		"outcome", // success, client_error, error
	},
)

func init() {
	prometheus.MustRegister(describeRequests)
}
