package transactionSigner

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type fakeBackend struct {
	mu sync.Mutex

	chainID      *big.Int
	tipCap       *big.Int
	tipErr       error
	baseFee      *big.Int
	gasEstimate  uint64
	pendingNonce uint64
	status       uint64
	sendErr      error
	unmined      bool

	sent      []*types.Transaction
	estimates []ethereum.CallMsg
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:      big.NewInt(4201),
		tipCap:       big.NewInt(2_000_000_000),
		baseFee:      big.NewInt(10_000_000_000),
		gasEstimate:  100_000,
		pendingNonce: 7,
		status:       types.ReceiptStatusSuccessful,
	}
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	if f.tipErr != nil {
		return nil, f.tipErr
	}
	return f.tipCap, nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(100), BaseFee: f.baseFee}, nil
}

func (f *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.estimates = append(f.estimates, msg)
	return f.gasEstimate, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.pendingNonce, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unmined {
		return nil, ethereum.NotFound
	}
	for _, tx := range f.sent {
		if tx.Hash() == txHash {
			return &types.Receipt{
				Status:      f.status,
				TxHash:      txHash,
				GasUsed:     f.gasEstimate / 2,
				BlockNumber: big.NewInt(101),
			}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}

func Test_PrivateKeySigner(t *testing.T) {
	l := zaptest.NewLogger(t)
	target := common.HexToAddress("0x00000000000000000000000000000000000006b6")

	newUnsigned := func() *types.Transaction {
		return types.NewTx(&types.LegacyTx{
			To:   &target,
			Data: []byte{0x4c, 0x8a, 0x4e, 0x74},
		})
	}

	t.Run("signs and sends an EIP-1559 transaction", func(t *testing.T) {
		backend := newFakeBackend()
		signer, err := NewPrivateKeySigner(testPrivateKey, backend, l)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), signer.GetFromAddress())

		receipt, err := signer.SignAndSendTransaction(context.Background(), newUnsigned())
		require.NoError(t, err)
		assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

		require.Len(t, backend.sent, 1)
		sent := backend.sent[0]
		assert.Equal(t, uint8(types.DynamicFeeTxType), sent.Type())
		assert.Equal(t, uint64(7), sent.Nonce())
		assert.Equal(t, uint64(120_000), sent.Gas())
		assert.Equal(t, big.NewInt(2_000_000_000), sent.GasTipCap())
		// 2 * base fee + tip
		assert.Equal(t, big.NewInt(22_000_000_000), sent.GasFeeCap())
		assert.Equal(t, big.NewInt(4201), sent.ChainId())

		from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(4201)), sent)
		require.NoError(t, err)
		assert.Equal(t, signer.GetFromAddress(), from)
	})

	t.Run("falls back to default tip", func(t *testing.T) {
		backend := newFakeBackend()
		backend.tipErr = errors.New("method not found")
		backend.baseFee = nil
		signer, err := NewPrivateKeySigner(testPrivateKey, backend, l)
		require.NoError(t, err)

		_, err = signer.SignAndSendTransaction(context.Background(), newUnsigned())
		require.NoError(t, err)
		require.Len(t, backend.sent, 1)
		assert.Equal(t, FallbackGasTipCap, backend.sent[0].GasTipCap())
		assert.Equal(t, FallbackGasTipCap, backend.sent[0].GasFeeCap())
	})

	t.Run("reverted receipt", func(t *testing.T) {
		backend := newFakeBackend()
		backend.status = types.ReceiptStatusFailed
		signer, err := NewPrivateKeySigner(testPrivateKey, backend, l)
		require.NoError(t, err)

		receipt, err := signer.SignAndSendTransaction(context.Background(), newUnsigned())
		require.Error(t, err)
		var reverted *RevertedError
		require.ErrorAs(t, err, &reverted)
		assert.Equal(t, receipt, reverted.Receipt)
	})

	t.Run("send failure", func(t *testing.T) {
		backend := newFakeBackend()
		backend.sendErr = errors.New("insufficient funds for gas * price + value")
		signer, err := NewPrivateKeySigner(testPrivateKey, backend, l)
		require.NoError(t, err)

		_, err = signer.SignAndSendTransaction(context.Background(), newUnsigned())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient funds")
	})

	t.Run("sent but unconfirmed keeps the hash", func(t *testing.T) {
		backend := newFakeBackend()
		backend.unmined = true
		signer, err := NewPrivateKeySigner(testPrivateKey, backend, l)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		receipt, err := signer.SignAndSendTransaction(ctx, newUnsigned())
		require.Error(t, err)
		assert.Nil(t, receipt)

		var unconfirmed *UnconfirmedError
		require.ErrorAs(t, err, &unconfirmed)
		require.Len(t, backend.sent, 1)
		assert.Equal(t, backend.sent[0].Hash(), unconfirmed.TxHash)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("transact opts do not send", func(t *testing.T) {
		signer, err := NewPrivateKeySigner(testPrivateKey, newFakeBackend(), l)
		require.NoError(t, err)

		opts, err := signer.GetTransactOpts(context.Background())
		require.NoError(t, err)
		assert.True(t, opts.NoSend)
		assert.Equal(t, signer.GetFromAddress(), opts.From)
	})

	t.Run("estimate gas price and limit", func(t *testing.T) {
		signer, err := NewPrivateKeySigner(testPrivateKey, newFakeBackend(), l)
		require.NoError(t, err)

		price, limit, err := signer.EstimateGasPriceAndLimit(context.Background(), newUnsigned())
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(22_000_000_000), price)
		assert.Equal(t, uint64(120_000), limit)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := NewTransactionSigner(&SignerConfig{PrivateKey: "0xzz"}, newFakeBackend(), l)
		require.Error(t, err)
		_, err = NewTransactionSigner(&SignerConfig{}, newFakeBackend(), l)
		require.Error(t, err)
	})
}

func Test_addGasBuffer(t *testing.T) {
	assert.Equal(t, uint64(120), addGasBuffer(100))
	assert.Equal(t, uint64(0), addGasBuffer(0))
}
