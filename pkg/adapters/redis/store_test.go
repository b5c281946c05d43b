package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/simchain/pkg/adapters/redis"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ports.RunMonitorStoreContract(t, store)
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, domain.ArrivalRecord{Name: "a", EndTime: 3, Finished: true}))

	assert.True(t, mr.Exists("test:arrivals"))
	assert.Equal(t, time.Minute, mr.TTL("test:arrivals"))

	mr.FastForward(2 * time.Minute)
	recs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)

	_, err := mr.Push("simchain:arrivals", "{not json")
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.Error(t, err)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	require.NoError(t, store.Ping(context.Background()))

	mr.SetError("LOADING")
	assert.Error(t, store.Ping(context.Background()))
}
