package redis

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/lsp-relay/lsp-relay-go/pkg/channelLock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefixLane = "lsp-relay:lane:"

	DefaultTTL           = 2 * time.Minute
	DefaultRetryInterval = 100 * time.Millisecond
)

// releaseScript deletes the lane only if it is still held by the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lane TTL only if it is still held by the caller's token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisChannelLock is an IChannelLock shared by every process using the same Redis.
// A lane is held by a random token with a TTL that the holder renews every TTL/3 until
// release, so only a crashed holder lets the lane expire.
type RedisChannelLock struct {
	client        *redis.Client
	logger        *zap.Logger
	keyPrefix     string
	ttl           time.Duration
	retryInterval time.Duration
	mu            sync.RWMutex
	closed        bool
}

var _ channelLock.IChannelLock = (*RedisChannelLock)(nil)

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string
	// Password is the optional Redis password
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix is prepended to every lane key
	KeyPrefix string
	// TTL bounds how long a lane outlives a crashed holder; defaults to DefaultTTL
	TTL time.Duration
	// RetryInterval is the polling interval while a lane is busy
	RetryInterval time.Duration
}

// NewRedisChannelLock connects to Redis and verifies the connection.
func NewRedisChannelLock(cfg *RedisConfig, logger *zap.Logger) (*RedisChannelLock, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	retry := cfg.RetryInterval
	if retry <= 0 {
		retry = DefaultRetryInterval
	}

	logger.Sugar().Infow("Redis channel lock initialized", "address", cfg.Address, "db", cfg.DB, "ttl", ttl.String())

	return &RedisChannelLock{
		client:        client,
		logger:        logger,
		keyPrefix:     cfg.KeyPrefix,
		ttl:           ttl,
		retryInterval: retry,
	}, nil
}

func (r *RedisChannelLock) laneKey(signer common.Address, channelId *big.Int) string {
	return r.keyPrefix + keyPrefixLane + channelLock.Key(signer, channelId)
}

func (r *RedisChannelLock) Acquire(ctx context.Context, signer common.Address, channelId *big.Int) (func(), error) {
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return nil, fmt.Errorf("channel lock is closed")
	}

	key := r.laneKey(signer, channelId)
	token := uuid.New().String()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire channel lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire channel lock %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}

	r.logger.Sugar().Debugw("Acquired channel lock", "key", key)

	stop := make(chan struct{})
	done := make(chan struct{})
	go r.renew(key, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil {
				r.logger.Sugar().Warnw("Failed to release channel lock", "key", key, "error", err)
			}
		})
	}, nil
}

// renew keeps the lane alive while it is held, and stops when stop is closed or the token is lost.
func (r *RedisChannelLock) renew(key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := r.ttl / 3
	if interval <= 0 {
		interval = r.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		held, err := renewScript.Run(ctx, r.client, []string{key}, token, r.ttl.Milliseconds()).Int()
		cancel()
		switch {
		case errors.Is(err, redis.ErrClosed):
			return
		case err != nil:
			r.logger.Sugar().Warnw("Failed to renew channel lock", "key", key, "error", err)
		case held == 0:
			r.logger.Sugar().Warnw("Channel lock expired while held", "key", key)
			return
		}
	}
}

func (r *RedisChannelLock) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.client.Close()
}
