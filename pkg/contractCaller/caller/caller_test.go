package caller

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/chainReader"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP0ERC725Account"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP6KeyManager"
	"github.com/lsp-relay/lsp-relay-go/pkg/permissions"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/scope"
	"github.com/lsp-relay/lsp-relay-go/pkg/transactionSigner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	keyManagerAddress = common.HexToAddress("0x00000000000000000000000000000000000006b6")
	profileAddress    = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	controllerA       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	controllerB       = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

type fakeTxSigner struct {
	key     *ecdsa.PrivateKey
	status  uint64
	sendErr error
	sent    []*ethereumTypes.Transaction
}

var _ transactionSigner.ITransactionSigner = (*fakeTxSigner)(nil)

func newFakeTxSigner(t *testing.T) *fakeTxSigner {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &fakeTxSigner{key: key, status: ethereumTypes.ReceiptStatusSuccessful}
}

func (f *fakeTxSigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(f.key, big.NewInt(4201))
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.NoSend = true
	return opts, nil
}

func (f *fakeTxSigner) SignAndSendTransaction(_ context.Context, tx *ethereumTypes.Transaction) (*ethereumTypes.Receipt, error) {
	f.sent = append(f.sent, tx)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	receipt := &ethereumTypes.Receipt{Status: f.status, TxHash: tx.Hash(), BlockNumber: big.NewInt(12)}
	if f.status != ethereumTypes.ReceiptStatusSuccessful {
		return receipt, &transactionSigner.RevertedError{Receipt: receipt}
	}
	return receipt, nil
}

func (f *fakeTxSigner) GetFromAddress() common.Address {
	return crypto.PubkeyToAddress(f.key.PublicKey)
}

func (f *fakeTxSigner) EstimateGasPriceAndLimit(context.Context, *ethereumTypes.Transaction) (*big.Int, uint64, error) {
	return new(big.Int), 0, nil
}

func newProfileChain(t *testing.T, store map[common.Hash][]byte) *chainReader.FakeChain {
	acctAbi, err := ILSP0ERC725Account.ILSP0ERC725AccountMetaData.GetAbi()
	require.NoError(t, err)

	chain := chainReader.NewFakeChain()
	chain.Handle(profileAddress, acctAbi, "getData", func(_ ethereum.CallMsg, args []interface{}) ([]interface{}, error) {
		key := args[0].([32]byte)
		return []interface{}{store[common.Hash(key)]}, nil
	})
	chain.Handle(profileAddress, acctAbi, "getDataBatch", func(_ ethereum.CallMsg, args []interface{}) ([]interface{}, error) {
		keys := args[0].([][32]byte)
		values := make([][]byte, len(keys))
		for i, k := range keys {
			values[i] = store[common.Hash(k)]
		}
		return []interface{}{values}, nil
	})
	return chain
}

func newCaller(t *testing.T, chain *chainReader.FakeChain, signer transactionSigner.ITransactionSigner) *ContractCaller {
	cc, err := NewContractCaller(chain, signer, zaptest.NewLogger(t))
	require.NoError(t, err)
	return cc
}

func testRelayCall() *RelayCall {
	sig := make([]byte, 65)
	sig[64] = 27
	return &RelayCall{
		KeyManager:         keyManagerAddress,
		Signature:          sig,
		Nonce:              uint256.NewInt(3),
		ValidityTimestamps: uint256.NewInt(0),
		Payload:            common.FromHex("0x7f23690c"),
		Value:              uint256.NewInt(10),
	}
}

func encodeRevertReason(t *testing.T, reason string) []byte {
	stringTy, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringTy}}.Pack(reason)
	require.NoError(t, err)
	return append(common.FromHex("0x08c379a0"), packed...)
}

func Test_GetControllers(t *testing.T) {
	idx0, err := permissions.ArrayIndexKey(big.NewInt(0))
	require.NoError(t, err)
	idx1, err := permissions.ArrayIndexKey(big.NewInt(1))
	require.NoError(t, err)
	idx2, err := permissions.ArrayIndexKey(big.NewInt(2))
	require.NoError(t, err)
	length, err := permissions.EncodeArrayLength(big.NewInt(3))
	require.NoError(t, err)

	store := map[common.Hash][]byte{
		permissions.AddressPermissionsArrayKey: length,
		idx0:                                   controllerA.Bytes(),
		idx1:                                   controllerB.Bytes(),
		idx2:                                   make([]byte, 32),
	}
	cc := newCaller(t, newProfileChain(t, store), nil)

	controllers, err := cc.GetControllers(context.Background(), profileAddress)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{controllerA, controllerB}, controllers)
}

func Test_GetControllers_Empty(t *testing.T) {
	cc := newCaller(t, newProfileChain(t, map[common.Hash][]byte{}), nil)

	controllers, err := cc.GetControllers(context.Background(), profileAddress)
	require.NoError(t, err)
	assert.Empty(t, controllers)
}

func Test_GetControllerPermissions(t *testing.T) {
	mask, err := permissions.CombineNames("CALL", "SETDATA")
	require.NoError(t, err)
	maskBytes := mask.Bytes32()

	target := common.HexToAddress("0x3333333333333333333333333333333333333333")
	allowedCalls, err := scope.EncodeAllowedCalls(&scope.AllowedCallsConfig{
		CallTypes: []scope.CallType{scope.CallTypeCall},
		Addresses: []common.Address{target},
	})
	require.NoError(t, err)
	allowedDataKeys, err := scope.EncodeAllowedDataKeys([][]byte{common.FromHex("0xcafe")})
	require.NoError(t, err)

	store := map[common.Hash][]byte{
		permissions.PermissionsKey(controllerA):     maskBytes[:],
		permissions.AllowedCallsKey(controllerA):    allowedCalls,
		permissions.AllowedDataKeysKey(controllerA): allowedDataKeys,
	}
	cc := newCaller(t, newProfileChain(t, store), nil)

	got, err := cc.GetControllerPermissions(context.Background(), profileAddress, controllerA)
	require.NoError(t, err)
	assert.Equal(t, controllerA, got.Controller)
	assert.True(t, got.Permissions.Equal(mask))
	require.Len(t, got.AllowedCalls, 1)
	assert.Equal(t, target, got.AllowedCalls[0].Address)
	assert.Equal(t, scope.CallTypeCall, got.AllowedCalls[0].CallType)
	assert.Equal(t, scope.WildcardSelector, got.AllowedCalls[0].Selector)
	assert.Equal(t, [][]byte{common.FromHex("0xcafe")}, got.AllowedDataKeys)

	t.Run("unknown controller has no permissions", func(t *testing.T) {
		got, err := cc.GetControllerPermissions(context.Background(), profileAddress, controllerB)
		require.NoError(t, err)
		assert.True(t, got.Permissions.IsZero())
		assert.Empty(t, got.AllowedCalls)
		assert.Empty(t, got.AllowedDataKeys)
	})
}

func Test_GetData_NetworkError(t *testing.T) {
	chain := newProfileChain(t, map[common.Hash][]byte{})
	chain.Err = errors.New("connection refused")
	cc := newCaller(t, chain, nil)

	_, err := cc.GetData(context.Background(), profileAddress, permissions.AddressPermissionsArrayKey)
	require.Error(t, err)
	assert.True(t, relayErrors.IsKind(err, relayErrors.NetworkError))

	_, err = cc.GetBalance(context.Background(), profileAddress)
	assert.True(t, relayErrors.IsKind(err, relayErrors.NetworkError))

	_, err = cc.GetTransactionCount(context.Background(), profileAddress)
	assert.True(t, relayErrors.IsKind(err, relayErrors.NetworkError))
}

func Test_AccountState(t *testing.T) {
	chain := chainReader.NewFakeChain()
	chain.SetCode(keyManagerAddress, []byte{0x60, 0x80})
	chain.SetBalance(profileAddress, big.NewInt(1e18))
	chain.SetNonce(controllerA, 4)
	cc := newCaller(t, chain, nil)
	ctx := context.Background()

	require.NoError(t, cc.EnsureContract(ctx, keyManagerAddress))
	err := cc.EnsureContract(ctx, controllerA)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))

	balance, err := cc.GetBalance(ctx, profileAddress)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1e18), balance)

	count, err := cc.GetTransactionCount(ctx, controllerA)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func Test_GetTarget(t *testing.T) {
	kmAbi, err := ILSP6KeyManager.ILSP6KeyManagerMetaData.GetAbi()
	require.NoError(t, err)
	chain := chainReader.NewFakeChain()
	chain.Handle(keyManagerAddress, kmAbi, "target", func(ethereum.CallMsg, []interface{}) ([]interface{}, error) {
		return []interface{}{profileAddress}, nil
	})
	cc := newCaller(t, chain, nil)

	target, err := cc.GetTarget(context.Background(), keyManagerAddress)
	require.NoError(t, err)
	assert.Equal(t, profileAddress, target)
}

func Test_SimulateExecuteRelayCall(t *testing.T) {
	kmAbi, err := ILSP6KeyManager.ILSP6KeyManagerMetaData.GetAbi()
	require.NoError(t, err)

	t.Run("returns call output", func(t *testing.T) {
		chain := chainReader.NewFakeChain()
		var seen ethereum.CallMsg
		chain.Handle(keyManagerAddress, kmAbi, "executeRelayCall", func(msg ethereum.CallMsg, args []interface{}) ([]interface{}, error) {
			seen = msg
			assert.Equal(t, big.NewInt(3), args[1].(*big.Int))
			assert.Equal(t, int64(0), args[2].(*big.Int).Int64())
			return []interface{}{[]byte{0xbe, 0xef}}, nil
		})
		cc := newCaller(t, chain, nil)

		out, err := cc.SimulateExecuteRelayCall(context.Background(), testRelayCall())
		require.NoError(t, err)
		assert.Equal(t, []byte{0xbe, 0xef}, out)
		assert.Equal(t, big.NewInt(10), seen.Value)
	})

	t.Run("revert carries reason", func(t *testing.T) {
		chain := chainReader.NewFakeChain()
		revertData := encodeRevertReason(t, "invalid signature")
		chain.Handle(keyManagerAddress, kmAbi, "executeRelayCall", func(ethereum.CallMsg, []interface{}) ([]interface{}, error) {
			return nil, &chainReader.RevertError{Data: revertData}
		})
		cc := newCaller(t, chain, nil)

		_, err := cc.SimulateExecuteRelayCall(context.Background(), testRelayCall())
		require.Error(t, err)
		assert.True(t, relayErrors.IsKind(err, relayErrors.Reverted))
		var relayErr *relayErrors.Error
		require.ErrorAs(t, err, &relayErr)
		assert.Equal(t, "invalid signature", relayErr.Details["reason"])
	})

	t.Run("transport failure", func(t *testing.T) {
		chain := chainReader.NewFakeChain()
		chain.Err = errors.New("i/o timeout")
		cc := newCaller(t, chain, nil)

		_, err := cc.SimulateExecuteRelayCall(context.Background(), testRelayCall())
		assert.True(t, relayErrors.IsKind(err, relayErrors.NetworkError))
	})

	t.Run("short signature", func(t *testing.T) {
		cc := newCaller(t, chainReader.NewFakeChain(), nil)
		call := testRelayCall()
		call.Signature = call.Signature[:64]

		_, err := cc.SimulateExecuteRelayCall(context.Background(), call)
		assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
	})
}

func Test_ExecuteRelayCall(t *testing.T) {
	kmAbi, err := ILSP6KeyManager.ILSP6KeyManagerMetaData.GetAbi()
	require.NoError(t, err)

	t.Run("builds and sends the transaction", func(t *testing.T) {
		signer := newFakeTxSigner(t)
		cc := newCaller(t, chainReader.NewFakeChain(), signer)
		call := testRelayCall()

		receipt, err := cc.ExecuteRelayCall(context.Background(), call)
		require.NoError(t, err)
		assert.Equal(t, ethereumTypes.ReceiptStatusSuccessful, receipt.Status)

		require.Len(t, signer.sent, 1)
		tx := signer.sent[0]
		assert.Equal(t, keyManagerAddress, *tx.To())
		assert.Equal(t, big.NewInt(10), tx.Value())

		method := kmAbi.Methods["executeRelayCall"]
		assert.Equal(t, method.ID, tx.Data()[:4])
		args, err := method.Inputs.Unpack(tx.Data()[4:])
		require.NoError(t, err)
		assert.Equal(t, call.Signature, args[0].([]byte))
		assert.Equal(t, big.NewInt(3), args[1].(*big.Int))
		assert.Equal(t, call.Payload, args[3].([]byte))
	})

	t.Run("reverted receipt", func(t *testing.T) {
		signer := newFakeTxSigner(t)
		signer.status = ethereumTypes.ReceiptStatusFailed
		cc := newCaller(t, chainReader.NewFakeChain(), signer)

		receipt, err := cc.ExecuteRelayCall(context.Background(), testRelayCall())
		require.Error(t, err)
		assert.True(t, relayErrors.IsKind(err, relayErrors.Reverted))
		require.NotNil(t, receipt)
		assert.Equal(t, ethereumTypes.ReceiptStatusFailed, receipt.Status)
	})

	t.Run("send failure", func(t *testing.T) {
		signer := newFakeTxSigner(t)
		signer.sendErr = errors.New("nonce too low")
		cc := newCaller(t, chainReader.NewFakeChain(), signer)

		_, err := cc.ExecuteRelayCall(context.Background(), testRelayCall())
		assert.True(t, relayErrors.IsKind(err, relayErrors.TransactionFailed))
	})

	t.Run("sent but unconfirmed", func(t *testing.T) {
		signer := newFakeTxSigner(t)
		sentHash := common.HexToHash("0xbeef")
		signer.sendErr = &transactionSigner.UnconfirmedError{TxHash: sentHash, Err: context.DeadlineExceeded}
		cc := newCaller(t, chainReader.NewFakeChain(), signer)

		receipt, err := cc.ExecuteRelayCall(context.Background(), testRelayCall())
		require.Error(t, err)
		assert.Nil(t, receipt)
		assert.True(t, relayErrors.IsKind(err, relayErrors.TransactionFailed))

		var relayErr *relayErrors.Error
		require.ErrorAs(t, err, &relayErr)
		assert.Equal(t, sentHash.Hex(), relayErr.Details["txHash"])

		var unconfirmed *transactionSigner.UnconfirmedError
		require.ErrorAs(t, err, &unconfirmed)
		assert.Equal(t, sentHash, unconfirmed.TxHash)
	})

	t.Run("no signer", func(t *testing.T) {
		cc := newCaller(t, chainReader.NewFakeChain(), nil)

		_, err := cc.ExecuteRelayCall(context.Background(), testRelayCall())
		assert.True(t, relayErrors.IsKind(err, relayErrors.TransactionFailed))
	})
}

func Test_FilterPermissionsVerified(t *testing.T) {
	kmAbi, err := ILSP6KeyManager.ILSP6KeyManagerMetaData.GetAbi()
	require.NoError(t, err)
	eventID := kmAbi.Events["PermissionsVerified"].ID

	var selectorTopic common.Hash
	copy(selectorTopic[:4], common.FromHex("0x44c028fe"))

	chain := chainReader.NewFakeChain()
	chain.AddLogs(
		ethereumTypes.Log{
			Address:     keyManagerAddress,
			Topics:      []common.Hash{eventID, common.BytesToHash(controllerA.Bytes()), common.BigToHash(big.NewInt(5)), selectorTopic},
			BlockNumber: 10,
		},
		ethereumTypes.Log{
			Address: profileAddress,
			Topics:  []common.Hash{eventID, common.BytesToHash(controllerB.Bytes()), {}, {}},
		},
		ethereumTypes.Log{
			Address: keyManagerAddress,
			Topics:  []common.Hash{common.HexToHash("0x01")},
		},
	)
	cc := newCaller(t, chain, nil)

	events, err := cc.FilterPermissionsVerified(context.Background(), keyManagerAddress, nil, 0, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, controllerA, events[0].Signer)
	assert.Equal(t, big.NewInt(5), events[0].Value)
	assert.Equal(t, [4]byte{0x44, 0xc0, 0x28, 0xfe}, events[0].Selector)
	assert.Equal(t, uint64(10), events[0].Raw.BlockNumber)
}
