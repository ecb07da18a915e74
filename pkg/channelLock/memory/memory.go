package memory

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lsp-relay/lsp-relay-go/pkg/channelLock"
)

// MemoryChannelLock is an in-process IChannelLock. It only serializes callers
// that share the same instance.
type MemoryChannelLock struct {
	mu     sync.Mutex
	lanes  map[string]chan struct{}
	closed bool
}

var _ channelLock.IChannelLock = (*MemoryChannelLock)(nil)

func NewMemoryChannelLock() *MemoryChannelLock {
	return &MemoryChannelLock{
		lanes: make(map[string]chan struct{}),
	}
}

func (m *MemoryChannelLock) lane(key string) (chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("channel lock is closed")
	}
	ch, ok := m.lanes[key]
	if !ok {
		// capacity 1: holding the token means holding the lane
		ch = make(chan struct{}, 1)
		m.lanes[key] = ch
	}
	return ch, nil
}

func (m *MemoryChannelLock) Acquire(ctx context.Context, signer common.Address, channelId *big.Int) (func(), error) {
	ch, err := m.lane(channelLock.Key(signer, channelId))
	if err != nil {
		return nil, err
	}

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to acquire channel lock: %w", ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}

func (m *MemoryChannelLock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
