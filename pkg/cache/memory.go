package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.uber.org/zap"
)

// MemoryStore is an in-process Store. Values are kept in their encoded form so
// callers never share attribute maps with the store.
type MemoryStore struct {
	prefix string
	ttl    time.Duration
	items  *gocache.Cache
}

var _ Store = &MemoryStore{}

// NewMemoryStore creates an empty in-process store. A zero ttl keeps records until evicted.
func NewMemoryStore(prefix string, ttl time.Duration) *MemoryStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	expiration := gocache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	}

	return &MemoryStore{
		prefix: prefix,
		ttl:    expiration,
		items:  gocache.New(expiration, time.Minute),
	}
}

func (m *MemoryStore) GetAll(ctx context.Context, namespace string) ([]Record, humane.Error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	// namespaces never contain the separator, so the prefix cannot match a nested namespace
	keyPrefix := namespaceKey(m.prefix, namespace) + keySeparator

	records := make([]Record, 0)
	for key, item := range m.items.Items() {
		id, found := strings.CutPrefix(key, keyPrefix)
		if !found {
			continue
		}

		attributes, ok := m.decode(ctx, namespace, key, item.Object)
		if !ok {
			continue
		}

		records = append(records, Record{ID: id, Attributes: attributes})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	return records, nil
}

func (m *MemoryStore) Get(ctx context.Context, namespace string, id string) (*Record, humane.Error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	key := recordKey(m.prefix, namespace, id)

	value, found := m.items.Get(key)
	if !found {
		return nil, humane.Wrap(ErrRecordNotFound, "no cached record "+id+" in namespace "+namespace)
	}

	attributes, ok := m.decode(ctx, namespace, key, value)
	if !ok {
		return nil, humane.Wrap(ErrRecordNotFound, "cached record "+id+" in namespace "+namespace+" is not decodable")
	}

	return &Record{ID: id, Attributes: attributes}, nil
}

func (m *MemoryStore) Put(_ context.Context, namespace string, records ...Record) humane.Error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}

	for _, record := range records {
		data, err := encodeAttributes(record.Attributes)
		if err != nil {
			return err
		}

		m.items.Set(recordKey(m.prefix, namespace, record.ID), data, m.ttl)
	}
	return nil
}

func (m *MemoryStore) Evict(_ context.Context, namespace string, ids ...string) humane.Error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}

	for _, id := range ids {
		m.items.Delete(recordKey(m.prefix, namespace, id))
	}
	return nil
}

func (m *MemoryStore) Ping(_ context.Context) humane.Error {
	return nil
}

func (m *MemoryStore) Close() humane.Error {
	m.items.Flush()
	return nil
}

func (m *MemoryStore) decode(ctx context.Context, namespace, key string, value any) (map[string]any, bool) {
	data, ok := value.([]byte)
	if !ok {
		undecodableRecords.WithLabelValues(string(MemoryDriver), namespace).Inc()
		otelzap.L().DebugContext(ctx, "skipping cache record with unexpected value type", zap.String("key", key))
		return nil, false
	}

	attributes, err := decodeAttributes(data)
	if err != nil {
		undecodableRecords.WithLabelValues(string(MemoryDriver), namespace).Inc()
		otelzap.L().WithError(err).DebugContext(ctx, "skipping undecodable cache record", zap.String("key", key))
		return nil, false
	}

	return attributes, true
}
