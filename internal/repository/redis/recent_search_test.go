package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*recentSearchStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRecentSearchStore(client).(*recentSearchStore), mr
}

func TestRecentSearchStore_AddMovesToFrontAndCaps(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := store.Add(ctx, "u-1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}
	items, err := store.Add(ctx, "u-1", "q5")
	require.NoError(t, err)

	require.Len(t, items, 10)
	assert.Equal(t, "q5", items[0])
	assert.Equal(t, "q11", items[1])
	assert.NotContains(t, items, "q0")

	count := 0
	for _, it := range items {
		if it == "q5" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	listed, err := store.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, items, listed)
}

func TestRecentSearchStore_ClearRemovesKey(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "u-1", "leave")
	require.NoError(t, err)
	assert.True(t, mr.Exists(recentKey("u-1")))

	require.NoError(t, store.Clear(ctx, "u-1"))
	assert.False(t, mr.Exists(recentKey("u-1")))

	items, err := store.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRecentSearchStore_BlankQueryIgnored(t *testing.T) {
	store, _ := newStore(t)

	items, err := store.Add(context.Background(), "u-1", "   ")
	require.NoError(t, err)
	assert.Empty(t, items)
}
