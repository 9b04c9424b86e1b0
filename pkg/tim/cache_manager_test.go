package tim_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tim-io/timapi/pkg/tim"
)

func TestCachingPolicyShouldCache(t *testing.T) {
	t.Parallel()

	policy := tim.DefaultCachingPolicy()

	assert.True(t, policy.ShouldCache("GET", "/items/"))
	assert.True(t, policy.ShouldCache("GET", "/users/me"))
	assert.False(t, policy.ShouldCache("POST", "/items/"))
	assert.False(t, policy.ShouldCache("PUT", "/items/update/1"))
	assert.False(t, policy.ShouldCache("DELETE", "/items/delete/1"))

	// Withdrawals mutate stock even though they ride on GET.
	assert.False(t, policy.ShouldCache("GET", "/items/withdraw/1"))
}

func TestCachingPolicyIsWrite(t *testing.T) {
	t.Parallel()

	policy := tim.DefaultCachingPolicy()

	assert.True(t, policy.IsWrite("POST", "/users/7/items/"))
	assert.True(t, policy.IsWrite("PUT", "/items/update/1"))
	assert.True(t, policy.IsWrite("DELETE", "/items/delete/1"))

	// The stock decrement is a write despite its GET verb.
	assert.True(t, policy.IsWrite("GET", "/items/withdraw/1"))

	assert.False(t, policy.IsWrite("GET", "/items/"))
	assert.False(t, policy.IsWrite("GET", "/users/me"))
	assert.False(t, policy.IsWrite("HEAD", "/items/"))
}

func TestCachingPolicyTTLFor(t *testing.T) {
	t.Parallel()

	policy := tim.DefaultCachingPolicy()

	assert.Equal(t, policy.ItemsTTL, policy.TTLFor("/items/"))
	assert.Equal(t, policy.ItemsTTL, policy.TTLFor("/items/hammer"))
	assert.Equal(t, policy.UsersTTL, policy.TTLFor("/users/me"))
	assert.Equal(t, policy.DefaultTTL, policy.TTLFor("/health"))
}

func TestCacheManagerKeyBuilding(t *testing.T) {
	t.Parallel()

	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	assert.Equal(t, "GET /items/", manager.GetCacheKey("GET", "/items/", nil))

	query := url.Values{}
	query.Set("skip", "0")
	query.Set("limit", "100")

	// Query values are encoded sorted, so equivalent requests share a key.
	assert.Equal(t, "GET /items/?limit=100&skip=0", manager.GetCacheKey("GET", "/items/", query))
}

func TestCacheManagerSetAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	key := manager.GetCacheKey("GET", "/items/", nil)
	require.NoError(t, manager.Set(ctx, key, []byte(`[{"id": 1}]`), time.Minute))

	entry := manager.Get(ctx, key)
	require.NotNil(t, entry)
	assert.Equal(t, []byte(`[{"id": 1}]`), entry.Data)

	assert.Nil(t, manager.Get(ctx, "GET /missing"))
}

func TestCacheManagerSetWithETag(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	require.NoError(t, manager.SetWithETag(ctx, "GET /items/", []byte(`[]`), `"v1"`, time.Minute))

	entry := manager.Get(ctx, "GET /items/")
	require.NotNil(t, entry)
	assert.Equal(t, `"v1"`, entry.ETag)
}

func TestCacheManagerSkipsOversizedValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), &tim.CacheOptions{
		DefaultTTL:   time.Minute,
		MaxValueSize: 8,
	})

	require.NoError(t, manager.Set(ctx, "big", []byte(`0123456789abcdef`), time.Minute))
	assert.Nil(t, manager.Get(ctx, "big"))

	require.NoError(t, manager.Set(ctx, "small", []byte(`ok`), time.Minute))
	assert.NotNil(t, manager.Get(ctx, "small"))
}

func TestCacheManagerInvalidateByResource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	itemsKey := manager.GetCacheKey("GET", "/items/", nil)
	usersKey := manager.GetCacheKey("GET", "/users/", nil)

	require.NoError(t, manager.Set(ctx, itemsKey, []byte(`[]`), time.Minute))
	require.NoError(t, manager.Set(ctx, usersKey, []byte(`[]`), time.Minute))

	// An item write drops user reads too: users embed their owned items.
	manager.Invalidate(ctx, "/items/update/1")

	assert.Nil(t, manager.Get(ctx, itemsKey))
	assert.Nil(t, manager.Get(ctx, usersKey))
}

func TestCacheManagerInvalidateNestedItemCreation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	itemsKey := manager.GetCacheKey("GET", "/items/", nil)
	usersKey := manager.GetCacheKey("GET", "/users/7", nil)

	require.NoError(t, manager.Set(ctx, itemsKey, []byte(`[]`), time.Minute))
	require.NoError(t, manager.Set(ctx, usersKey, []byte(`{}`), time.Minute))

	// Item creation is nested under /users/{id}/items/.
	manager.Invalidate(ctx, "/users/7/items/")

	assert.Nil(t, manager.Get(ctx, itemsKey))
	assert.Nil(t, manager.Get(ctx, usersKey))
}

func TestCacheManagerInvalidateUserWriteKeepsUnrelated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	usersKey := manager.GetCacheKey("GET", "/users/", nil)
	otherKey := manager.GetCacheKey("GET", "/health", nil)

	require.NoError(t, manager.Set(ctx, usersKey, []byte(`[]`), time.Minute))
	require.NoError(t, manager.Set(ctx, otherKey, []byte(`{}`), time.Minute))

	manager.Invalidate(ctx, "/users/update/me")

	assert.Nil(t, manager.Get(ctx, usersKey))
	assert.NotNil(t, manager.Get(ctx, otherKey))
}

func TestCacheManagerClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := tim.NewCacheManager(tim.NewMemoryCache(10), nil)

	require.NoError(t, manager.Set(ctx, "a", []byte(`{}`), time.Minute))
	require.NoError(t, manager.Set(ctx, "b", []byte(`{}`), time.Minute))

	require.NoError(t, manager.Clear(ctx))
	assert.Nil(t, manager.Get(ctx, "a"))
	assert.Nil(t, manager.Get(ctx, "b"))
}
