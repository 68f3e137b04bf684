package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) Store

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore("test", 0)
		},
		"redis": func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return NewRedisStoreFromClient("test", 0, client)
		},
	}
}

func TestStoreGetAll(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			require.Nil(t, store.Put(ctx, "ecsClusters",
				Record{ID: "c", Attributes: map[string]any{"name": "c"}},
				Record{ID: "a", Attributes: map[string]any{"name": "a"}},
				Record{ID: "b", Attributes: map[string]any{"name": "b"}},
			))
			require.Nil(t, store.Put(ctx, "other", Record{ID: "x", Attributes: map[string]any{"name": "x"}}))

			records, err := store.GetAll(ctx, "ecsClusters")
			require.Nil(t, err)
			require.Len(t, records, 3)
			require.Equal(t, "a", records[0].ID)
			require.Equal(t, "b", records[1].ID)
			require.Equal(t, "c", records[2].ID)
			require.Equal(t, "a", records[0].Attributes["name"])

			again, err := store.GetAll(ctx, "ecsClusters")
			require.Nil(t, err)
			require.Equal(t, records, again)
		})
	}
}

func TestStoreGetAllEmptyNamespace(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			records, err := newStore(t).GetAll(context.Background(), "nothing-here")
			require.Nil(t, err)
			require.NotNil(t, records)
			require.Empty(t, records)
		})
	}
}

func TestStoreGetPutEvict(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			require.Nil(t, store.Put(ctx, "ns", Record{ID: "one", Attributes: map[string]any{"k": "v1"}}))
			require.Nil(t, store.Put(ctx, "ns", Record{ID: "one", Attributes: map[string]any{"k": "v2"}}))

			record, err := store.Get(ctx, "ns", "one")
			require.Nil(t, err)
			require.Equal(t, "v2", record.Attributes["k"])

			require.Nil(t, store.Evict(ctx, "ns", "one", "unknown"))

			_, err = store.Get(ctx, "ns", "one")
			require.NotNil(t, err)
			require.ErrorIs(t, err.Cause(), ErrRecordNotFound)

			records, err := store.GetAll(ctx, "ns")
			require.Nil(t, err)
			require.Empty(t, records)
		})
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			attributes := map[string]any{"k": "original"}
			require.Nil(t, store.Put(ctx, "ns", Record{ID: "one", Attributes: attributes}))
			attributes["k"] = "mutated"

			record, err := store.Get(ctx, "ns", "one")
			require.Nil(t, err)
			require.Equal(t, "original", record.Attributes["k"])
		})
	}
}

func TestMemoryStoreSkipsUndecodableRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test", 0)

	require.Nil(t, store.Put(ctx, "ns", Record{ID: "good", Attributes: map[string]any{"k": "v"}}))
	store.items.Set(recordKey("test", "ns", "wrong-type"), "not bytes", 0)
	store.items.Set(recordKey("test", "ns", "garbage"), []byte{0xc1}, 0)

	records, err := store.GetAll(ctx, "ns")
	require.Nil(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "good", records[0].ID)
}

func TestMemoryStoreExpiresRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test", 10*time.Millisecond)

	require.Nil(t, store.Put(ctx, "ns", Record{ID: "one", Attributes: map[string]any{"k": "v"}}))

	require.Eventually(t, func() bool {
		records, err := store.GetAll(ctx, "ns")
		return err == nil && len(records) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRedisStoreSkipsUndecodableAndExpiredRecords(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStoreFromClient("test", time.Minute, client)
	require.Nil(t, store.Put(ctx, "ns",
		Record{ID: "good", Attributes: map[string]any{"k": "v"}},
	))

	// undecodable value that is still indexed
	require.NoError(t, mr.Set(recordKey("test", "ns", "garbage"), "garbage"))
	_, err := mr.ZAdd(namespaceKey("test", "ns"), 0, "garbage")
	require.NoError(t, err)

	// indexed id without a value
	_, err = mr.ZAdd(namespaceKey("test", "ns"), 0, "dangling")
	require.NoError(t, err)

	records, herr := store.GetAll(ctx, "ns")
	require.Nil(t, herr)
	require.Len(t, records, 1)
	require.Equal(t, "good", records[0].ID)

	// the dangling id is dropped from the index by the read
	members, err := mr.ZMembers(namespaceKey("test", "ns"))
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"good", "garbage"}, members)

	require.Nil(t, store.Put(ctx, "ns",
		Record{ID: "second", Attributes: map[string]any{"k": "v"}},
		Record{ID: "third", Attributes: map[string]any{"k": "v"}},
	))
	require.Equal(t, int64(4), client.ZCard(ctx, namespaceKey("test", "ns")).Val())

	mr.FastForward(2 * time.Minute)

	records, herr = store.GetAll(ctx, "ns")
	require.Nil(t, herr)
	require.Empty(t, records)

	// only the undecodable record has no TTL and stays indexed
	require.Equal(t, int64(1), client.ZCard(ctx, namespaceKey("test", "ns")).Val())
	members, err = mr.ZMembers(namespaceKey("test", "ns"))
	require.NoError(t, err)
	require.Equal(t, []string{"garbage"}, members)
}

func TestRedisStorePruneFailureKeepsRecords(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStoreFromClient("test", 0, client)
	require.Nil(t, store.Put(ctx, "ns", Record{ID: "good", Attributes: map[string]any{"k": "v"}}))
	_, err := mr.ZAdd(namespaceKey("test", "ns"), 0, "dangling")
	require.NoError(t, err)

	// ZREM fails, the read still succeeds
	mr.SetError("READONLY You can't write against a read only replica.")
	t.Cleanup(func() { mr.SetError("") })
	store.prune(ctx, "ns", namespaceKey("test", "ns"), []any{"dangling"})
	mr.SetError("")

	records, herr := store.GetAll(ctx, "ns")
	require.Nil(t, herr)
	require.Len(t, records, 1)
	require.Equal(t, "good", records[0].ID)
}

func TestStoreRejectsInvalidNamespaces(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			for _, namespace := range []string{"", "a:b"} {
				_, err := store.GetAll(ctx, namespace)
				require.NotNil(t, err)
				require.ErrorIs(t, err.Cause(), ErrInvalidNamespace)

				_, err = store.Get(ctx, namespace, "id")
				require.NotNil(t, err)
				require.ErrorIs(t, err.Cause(), ErrInvalidNamespace)

				err = store.Put(ctx, namespace, Record{ID: "c", Attributes: map[string]any{"k": "v"}})
				require.NotNil(t, err)
				require.ErrorIs(t, err.Cause(), ErrInvalidNamespace)

				err = store.Evict(ctx, namespace, "c")
				require.NotNil(t, err)
				require.ErrorIs(t, err.Cause(), ErrInvalidNamespace)
			}

			// ids may contain the separator without leaking into other namespaces
			require.Nil(t, store.Put(ctx, "a", Record{ID: "b:c", Attributes: map[string]any{"k": "v"}}))
			records, err := store.GetAll(ctx, "a")
			require.Nil(t, err)
			require.Len(t, records, 1)
			require.Equal(t, "b:c", records[0].ID)

			records, err = store.GetAll(ctx, "b")
			require.Nil(t, err)
			require.Empty(t, records)
		})
	}
}

func TestRedisStoreUnreachable(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(ctx, "test", 0, RedisOptions{Address: addr})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not reachable")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, Config{})
	require.Nil(t, err)
	require.IsType(t, &MemoryStore{}, store)

	mr := miniredis.RunT(t)
	store, err = New(ctx, Config{Driver: RedisDriver, Redis: RedisOptions{Address: mr.Addr()}})
	require.Nil(t, err)
	require.IsType(t, &RedisStore{}, store)
	require.Nil(t, store.Close())

	store, err = New(ctx, Config{Driver: RedisDriver})
	require.NotNil(t, err)
	require.Nil(t, store)

	addr := mr.Addr()
	mr.Close()
	store, err = New(ctx, Config{Driver: RedisDriver, Redis: RedisOptions{Address: addr}})
	require.NotNil(t, err)
	require.Nil(t, store)

	_, err = New(ctx, Config{Driver: "etcd"})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknown cache driver")
}
