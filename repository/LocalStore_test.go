package repository

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"beautyStore/entities"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseLocalStore runs the behaviour every LocalStore must share.
func exerciseLocalStore(t *testing.T, ls LocalStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := ls.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ls.Set(ctx, "k", "v1"))
	v, ok, err := ls.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// whole-value replace
	require.NoError(t, ls.Set(ctx, "k", "v2"))
	v, _, err = ls.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, ls.Set(ctx, "empty", ""))
	v, ok, err = ls.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemoryLocalStore(t *testing.T) {
	m := NewMemoryLocalStore()
	exerciseLocalStore(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, m.Set(ctx, "k", "v"))
	_, _, err := m.Get(ctx, "k")
	assert.Error(t, err)
}

func TestSQLiteLocalStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	ls, err := NewSQLiteLocalStore(db)
	require.NoError(t, err)
	exerciseLocalStore(t, ls)
	require.NoError(t, db.Close())

	// values survive reopening the file
	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	ls, err = NewSQLiteLocalStore(db)
	require.NoError(t, err)
	v, ok, err := ls.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	_, err = NewSQLiteLocalStore(nil)
	assert.Error(t, err)
}

func requireRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}
	conn, err := net.DialTimeout("tcp", "localhost:6379", time.Second)
	if err != nil {
		t.Skip("redis is not available on localhost:6379")
	}
	conn.Close()
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisLocalStore(t *testing.T) {
	rdb := requireRedis(t)
	ctx := context.Background()
	prefix := "storefront-test:" + t.Name() + ":"
	t.Cleanup(func() {
		rdb.Del(ctx, prefix+"k", prefix+"empty")
	})

	ls, err := NewRedisLocalStore(ctx, rdb, prefix)
	require.NoError(t, err)
	exerciseLocalStore(t, ls)

	ttl, err := rdb.TTL(ctx, prefix+"k").Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestSavedDataRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when empty", func(t *testing.T) {
		repo := NewSavedDataRepository(NewMemoryLocalStore(), nil)
		assert.Equal(t, []entities.SavedOrder{}, repo.SavedOrders(ctx))
		assert.Nil(t, repo.SavedCustomer(ctx))
		assert.Equal(t, entities.Snapshot{}, repo.Snapshot(ctx))
	})

	t.Run("corrupt values read as defaults", func(t *testing.T) {
		ls := NewMemoryLocalStore()
		require.NoError(t, ls.Set(ctx, SavedOrdersKey, "[{"))
		require.NoError(t, ls.Set(ctx, SavedCustomerKey, "nope"))
		require.NoError(t, ls.Set(ctx, SnapshotKey, `{"cart": 5}`))
		repo := NewSavedDataRepository(ls, nil)

		assert.Equal(t, []entities.SavedOrder{}, repo.SavedOrders(ctx))
		assert.Nil(t, repo.SavedCustomer(ctx))
		assert.Equal(t, entities.Snapshot{}, repo.Snapshot(ctx))
	})

	t.Run("null list reads as empty", func(t *testing.T) {
		ls := NewMemoryLocalStore()
		require.NoError(t, ls.Set(ctx, SavedOrdersKey, "null"))
		assert.Equal(t, []entities.SavedOrder{}, NewSavedDataRepository(ls, nil).SavedOrders(ctx))
	})

	t.Run("round trip", func(t *testing.T) {
		ls := NewMemoryLocalStore()
		repo := NewSavedDataRepository(ls, nil)

		orders := []entities.SavedOrder{{
			Id:       "ORD-1",
			Items:    []entities.CartItem{{Product: entities.Product{Id: 1, Name: "A", Price: decimal.NewFromInt(10), Images: []string{}}, Quantity: 2}},
			Total:    decimal.NewFromInt(20),
			Customer: entities.SavedCustomer{Name: "Dana", Phone: "1"},
		}}
		require.NoError(t, repo.SaveSavedOrders(ctx, orders))
		require.NoError(t, repo.SaveSavedCustomer(ctx, entities.SavedCustomer{Name: "Dana", Phone: "1"}))
		require.NoError(t, repo.SaveSnapshot(ctx, entities.Snapshot{Favorites: []int64{3}, IsAdminAuthenticated: true}))

		got := repo.SavedOrders(ctx)
		require.Len(t, got, 1)
		assert.Equal(t, "ORD-1", got[0].Id)
		assert.True(t, got[0].Total.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, 2, got[0].Items[0].Quantity)
		assert.Equal(t, "Dana", repo.SavedCustomer(ctx).Name)

		snap := repo.Snapshot(ctx)
		assert.Equal(t, []int64{3}, snap.Favorites)
		assert.True(t, snap.IsAdminAuthenticated)

		raw, ok, err := ls.Get(ctx, SavedOrdersKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Contains(t, raw, `"id":"ORD-1"`)
	})
}
