package channelLock

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// IChannelLock serializes use of a (signer, channel) nonce lane across callers.
// The relay pipeline itself holds no lock: callers that share a signer opt in by
// handing an implementation to the executor.
type IChannelLock interface {
	// Acquire blocks until the lane is free or ctx is done. The returned release
	// function is safe to call more than once.
	Acquire(ctx context.Context, signer common.Address, channelId *big.Int) (release func(), err error)

	// Close releases resources held by the lock implementation.
	Close() error
}

// Key returns the lock name for a lane.
func Key(signer common.Address, channelId *big.Int) string {
	channel := "0"
	if channelId != nil {
		channel = channelId.String()
	}
	return signer.Hex() + ":" + channel
}
