package cache

import (
	"strings"
)

const (
	// Provider is the first segment of every ECS cache key.
	Provider = "ecs"

	// ClustersNamespace is the cache namespace holding ECS cluster records.
	ClustersNamespace = "ecsClusters"

	keySeparator = ";"
)

// Attribute names of a cluster record as written by the ingestion process.
const (
	AccountAttribute     = "account"
	RegionAttribute      = "region"
	ClusterNameAttribute = "clusterName"
	ClusterArnAttribute  = "clusterArn"
)

// ClusterKey returns the cache id of a cluster record: ecs;ecsClusters;<account>;<region>;<name>.
func ClusterKey(account, region, name string) string {
	return strings.Join([]string{Provider, ClustersNamespace, account, region, name}, keySeparator)
}

// ParseClusterKey splits a key produced by ClusterKey.
func ParseClusterKey(key string) (account, region, name string, ok bool) {
	parts := strings.SplitN(key, keySeparator, 5)
	if len(parts) != 5 || parts[0] != Provider || parts[1] != ClustersNamespace {
		return "", "", "", false
	}

	if parts[2] == "" || parts[3] == "" || parts[4] == "" {
		return "", "", "", false
	}

	return parts[2], parts[3], parts[4], true
}
