package cache

import (
	"context"
	"testing"
	"time"

	"wasit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client, time.Minute), mr
}

func TestCacheService_Methods(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestCache(t)

	_, found, err := svc.GetMethods(ctx, true)
	require.NoError(t, err)
	assert.False(t, found)

	methods := []models.TransferMethod{
		{ID: "m-1", Name: "Vodafone Cash", Code: "VF_CASH", Category: models.MethodCategoryWallet, Enabled: true},
		{ID: "m-2", Name: "Orange Cash", Code: "ORANGE_CASH", Category: models.MethodCategoryWallet, Enabled: true, SortOrder: 1},
	}
	require.NoError(t, svc.SetMethods(ctx, true, methods))
	assert.True(t, mr.Exists(keyMethodsEnabled))
	assert.Equal(t, time.Minute, mr.TTL(keyMethodsEnabled))

	got, found, err := svc.GetMethods(ctx, true)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ORANGE_CASH", got[1].Code)

	_, found, err = svc.GetMethods(ctx, false)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.InvalidateMethods(ctx))
	assert.False(t, mr.Exists(keyMethodsEnabled))

	hits, misses := svc.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestCacheService_GetCorruptValue(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestCache(t)
	require.NoError(t, mr.Set(keyMethodsAll, "{not json"))

	_, _, err := svc.GetMethods(ctx, false)
	assert.Error(t, err)
}

func TestCacheService_HealthCheck(t *testing.T) {
	svc, mr := newTestCache(t)
	require.NoError(t, svc.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, svc.HealthCheck(context.Background()))
}
