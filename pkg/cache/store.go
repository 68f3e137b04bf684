// Package cache provides the namespace-scoped record store that holds the
// locally known view of cloud resources.
//
// Records are written by an ingestion process and enumerated by readers. A
// record is an opaque attribute map addressed by (namespace, id); the store
// does not interpret attributes. Two backends are available:
//
//   - memory: in-process, backed by github.com/patrickmn/go-cache
//   - redis:  shared between processes, backed by github.com/redis/go-redis/v9
//
// Every backend enumerates a namespace in ascending id order, so readers see
// a stable total order for an unchanged store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
)

// Record is a single cached entry.
type Record struct {
	// ID uniquely identifies the record within its namespace
	ID string
	// Attributes holds the raw attribute map as written by the ingestion process
	Attributes map[string]any
}

// Store is a namespace-scoped key/value record store.
//
// Namespaces must be non-empty and must not contain ":", the separator of the
// keys a Store writes. Every method rejects other namespaces with
// ErrInvalidNamespace. Implementations must be safe for concurrent use.
type Store interface {
	// GetAll returns every decodable record of the namespace in ascending ID order.
	// An unknown or empty namespace yields an empty slice.
	GetAll(ctx context.Context, namespace string) ([]Record, humane.Error)

	// Get returns a single record. The cause of the error is ErrRecordNotFound if it does not exist.
	Get(ctx context.Context, namespace string, id string) (*Record, humane.Error)

	// Put writes (or overwrites) records in the namespace.
	Put(ctx context.Context, namespace string, records ...Record) humane.Error

	// Evict removes records from the namespace. Unknown ids are ignored.
	Evict(ctx context.Context, namespace string, ids ...string) humane.Error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) humane.Error

	// Close releases the resources held by the store.
	Close() humane.Error
}

var (
	// ErrRecordNotFound is the cause of errors returned by Store.Get for unknown records.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidNamespace is the cause of errors for empty namespaces or namespaces containing the key separator.
	ErrInvalidNamespace = errors.New("invalid namespace")
)

// Driver selects the Store backend.
type Driver string

const (
	MemoryDriver Driver = "memory"
	RedisDriver  Driver = "redis"
)

// DefaultPrefix is prepended to every key written by a Store.
const DefaultPrefix = "ecsview"

// Config configures a Store created with New.
type Config struct {
	Driver Driver
	// Prefix is prepended to all keys; defaults to DefaultPrefix
	Prefix string
	// TTL is the lifetime of written records; zero keeps them until evicted
	TTL   time.Duration
	Redis RedisOptions
}

// RedisOptions holds the connection settings for the redis driver.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// New creates the Store selected by cfg.Driver.
func New(ctx context.Context, cfg Config) (Store, humane.Error) {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}

	switch cfg.Driver {
	case RedisDriver:
		s, err := NewRedisStore(ctx, cfg.Prefix, cfg.TTL, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	case MemoryDriver, "":
		return NewMemoryStore(cfg.Prefix, cfg.TTL), nil
	default:
		return nil, humane.New(fmt.Sprintf("unknown cache driver %q", cfg.Driver),
			fmt.Sprintf("set cache.driver to either %q or %q", MemoryDriver, RedisDriver),
		)
	}
}

// keySeparator joins prefix, namespace and id into store keys.
const keySeparator = ":"

func validateNamespace(namespace string) humane.Error {
	if namespace == "" || strings.Contains(namespace, keySeparator) {
		return humane.Wrap(ErrInvalidNamespace, fmt.Sprintf("invalid cache namespace %q", namespace),
			fmt.Sprintf("use a non-empty namespace without %q", keySeparator),
		)
	}
	return nil
}

func recordKey(prefix, namespace, id string) string {
	return prefix + keySeparator + namespace + keySeparator + id
}

func namespaceKey(prefix, namespace string) string {
	return prefix + keySeparator + namespace
}
