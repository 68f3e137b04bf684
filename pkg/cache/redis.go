package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.uber.org/zap"
)

// mgetChunkSize bounds the number of keys fetched per MGET round trip.
const mgetChunkSize = 500

// RedisStore is a Store shared between processes through redis.
//
// Each namespace keeps a sorted set of its record ids (all scored 0, so redis
// orders members lexicographically) next to one string key per record holding
// the msgpack encoded attributes. Ids whose record key has expired are removed
// from the sorted set by the next GetAll.
type RedisStore struct {
	prefix string
	ttl    time.Duration
	client redis.UniversalClient
}

var _ Store = &RedisStore{}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, prefix string, ttl time.Duration, opts RedisOptions) (*RedisStore, humane.Error) {
	if opts.Address == "" {
		return nil, humane.New("redis cache driver requires an address", "set cache.redis.address, e.g. localhost:6379")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	store := NewRedisStoreFromClient(prefix, ttl, client)
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	return store, nil
}

// NewRedisStoreFromClient creates a store on top of an existing client.
func NewRedisStoreFromClient(prefix string, ttl time.Duration, client redis.UniversalClient) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if ttl < 0 {
		ttl = 0
	}

	return &RedisStore{
		prefix: prefix,
		ttl:    ttl,
		client: client,
	}
}

func (r *RedisStore) GetAll(ctx context.Context, namespace string) ([]Record, humane.Error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	index := namespaceKey(r.prefix, namespace)
	ids, err := r.client.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, humane.Wrap(err, "failed to list cached records of namespace "+namespace, "check that redis is reachable")
	}

	var stale []any
	records := make([]Record, 0, len(ids))
	for start := 0; start < len(ids); start += mgetChunkSize {
		chunk := ids[start:min(start+mgetChunkSize, len(ids))]

		keys := make([]string, len(chunk))
		for i, id := range chunk {
			keys[i] = recordKey(r.prefix, namespace, id)
		}

		values, err := r.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, humane.Wrap(err, "failed to load cached records of namespace "+namespace, "check that redis is reachable")
		}

		for i, value := range values {
			// expired or evicted behind the index' back
			if value == nil {
				stale = append(stale, chunk[i])
				continue
			}

			attributes, ok := r.decode(ctx, namespace, keys[i], value)
			if !ok {
				continue
			}

			records = append(records, Record{ID: chunk[i], Attributes: attributes})
		}
	}

	r.prune(ctx, namespace, index, stale)
	return records, nil
}

// prune drops index members whose record key is gone. Failures are only logged.
func (r *RedisStore) prune(ctx context.Context, namespace, index string, ids []any) {
	if len(ids) == 0 {
		return
	}

	if err := r.client.ZRem(ctx, index, ids...).Err(); err != nil {
		otelzap.L().WithError(err).WarnContext(ctx, "failed to prune expired ids from cache index",
			zap.String("namespace", namespace),
			zap.Int("ids", len(ids)),
		)
		return
	}

	otelzap.L().DebugContext(ctx, "pruned expired ids from cache index",
		zap.String("namespace", namespace),
		zap.Int("ids", len(ids)),
	)
}

func (r *RedisStore) Get(ctx context.Context, namespace string, id string) (*Record, humane.Error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	key := recordKey(r.prefix, namespace, id)

	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, humane.Wrap(ErrRecordNotFound, "no cached record "+id+" in namespace "+namespace)
	}
	if err != nil {
		return nil, humane.Wrap(err, "failed to load cached record "+id, "check that redis is reachable")
	}

	attributes, ok := r.decode(ctx, namespace, key, data)
	if !ok {
		return nil, humane.Wrap(ErrRecordNotFound, "cached record "+id+" in namespace "+namespace+" is not decodable")
	}

	return &Record{ID: id, Attributes: attributes}, nil
}

func (r *RedisStore) Put(ctx context.Context, namespace string, records ...Record) humane.Error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	index := namespaceKey(r.prefix, namespace)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, record := range records {
			data, herr := encodeAttributes(record.Attributes)
			if herr != nil {
				return herr
			}

			pipe.Set(ctx, recordKey(r.prefix, namespace, record.ID), data, r.ttl)
			pipe.ZAdd(ctx, index, redis.Z{Score: 0, Member: record.ID})
		}
		return nil
	})

	if err != nil {
		return humane.Wrap(err, fmt.Sprintf("failed to write %d records to namespace %s", len(records), namespace))
	}
	return nil
}

func (r *RedisStore) Evict(ctx context.Context, namespace string, ids ...string) humane.Error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(r.prefix, namespace, id)
		members[i] = id
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, namespaceKey(r.prefix, namespace), members...)
		return nil
	})

	if err != nil {
		return humane.Wrap(err, fmt.Sprintf("failed to evict %d records from namespace %s", len(ids), namespace))
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) humane.Error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return humane.Wrap(err, "redis cache is not reachable",
			"check cache.redis.address and cache.redis.password",
			"ensure the redis server is running",
		)
	}
	return nil
}

func (r *RedisStore) Close() humane.Error {
	if err := r.client.Close(); err != nil {
		return humane.Wrap(err, "failed to close redis connection")
	}
	return nil
}

func (r *RedisStore) decode(ctx context.Context, namespace, key string, value any) (map[string]any, bool) {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		undecodableRecords.WithLabelValues(string(RedisDriver), namespace).Inc()
		otelzap.L().DebugContext(ctx, "skipping cache record with unexpected value type", zap.String("key", key))
		return nil, false
	}

	attributes, err := decodeAttributes(data)
	if err != nil {
		undecodableRecords.WithLabelValues(string(RedisDriver), namespace).Inc()
		otelzap.L().WithError(err).DebugContext(ctx, "skipping undecodable cache record", zap.String("key", key))
		return nil, false
	}

	return attributes, true
}
