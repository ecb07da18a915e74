package redis

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// getTestRedisAddress returns the Redis address for testing.
// Uses REDIS_TEST_ADDRESS env var if set, otherwise defaults to localhost:6379.
func getTestRedisAddress() string {
	if addr := os.Getenv("REDIS_TEST_ADDRESS"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// requireRedis skips the test if Redis is not available
func requireRedis(t *testing.T, ttl time.Duration) *RedisChannelLock {
	t.Helper()

	cfg := &RedisConfig{
		Address:       getTestRedisAddress(),
		DB:            15, // Use DB 15 for tests to avoid conflicts
		KeyPrefix:     "test:" + uuid.New().String() + ":",
		TTL:           ttl,
		RetryInterval: 10 * time.Millisecond,
	}

	lock, err := NewRedisChannelLock(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Skipf("Redis not available at %s: %v", cfg.Address, err)
		return nil
	}
	t.Cleanup(func() { _ = lock.Close() })
	return lock
}

var signer = common.HexToAddress("0x1111111111111111111111111111111111111111")

func TestRedisChannelLock_AcquireRelease(t *testing.T) {
	lock := requireRedis(t, time.Minute)

	release, err := lock.Acquire(context.Background(), signer, big.NewInt(0))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = lock.Acquire(ctx, signer, big.NewInt(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	release, err = lock.Acquire(ctx2, signer, big.NewInt(0))
	require.NoError(t, err)
	release()
}

func TestRedisChannelLock_ExpiredHolderDoesNotReleaseNewHolder(t *testing.T) {
	lock := requireRedis(t, time.Minute)
	laneKey := lock.laneKey(signer, big.NewInt(9))

	staleRelease, err := lock.Acquire(context.Background(), signer, big.NewInt(9))
	require.NoError(t, err)

	// the key vanishing is what a crashed holder's TTL expiry looks like to everyone else
	require.NoError(t, lock.client.Del(context.Background(), laneKey).Err())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	release, err := lock.Acquire(ctx, signer, big.NewInt(9))
	require.NoError(t, err)
	defer release()

	// the stale token no longer matches, so the lane stays held
	staleRelease()

	held, err := lock.client.Exists(context.Background(), laneKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), held)
}

func TestRedisChannelLock_HeldLaneOutlivesTTL(t *testing.T) {
	lock := requireRedis(t, 150*time.Millisecond)

	release, err := lock.Acquire(context.Background(), signer, big.NewInt(3))
	require.NoError(t, err)

	time.Sleep(600 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = lock.Acquire(ctx, signer, big.NewInt(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	held, err := lock.client.Exists(context.Background(), lock.laneKey(signer, big.NewInt(3))).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), held)
}

func TestRedisChannelLock_CloseDoesNotWaitForPendingAcquire(t *testing.T) {
	lock := requireRedis(t, time.Minute)

	release, err := lock.Acquire(context.Background(), signer, big.NewInt(4))
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pending := make(chan error, 1)
	go func() {
		_, err := lock.Acquire(ctx, signer, big.NewInt(4))
		pending <- err
	}()
	time.Sleep(50 * time.Millisecond)

	closed := make(chan error, 1)
	go func() { closed <- lock.Close() }()
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a pending Acquire")
	}

	select {
	case err := <-pending:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("pending Acquire did not return after Close")
	}

	_, err = lock.Acquire(context.Background(), signer, big.NewInt(5))
	assert.Error(t, err)
}

func TestNewRedisChannelLock_Validation(t *testing.T) {
	_, err := NewRedisChannelLock(nil, zaptest.NewLogger(t))
	assert.Error(t, err)
	_, err = NewRedisChannelLock(&RedisConfig{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
