package caller

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP6KeyManager"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/transactionSigner"
	"go.uber.org/zap"
)

func (cc *ContractCaller) buildTransactionOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := cc.signer.GetTransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	// pricing, gas and nonce are assigned by the signer when it sends
	opts.Nonce = new(big.Int)
	opts.GasPrice = new(big.Int)
	opts.GasLimit = 1
	return opts, nil
}

func (cc *ContractCaller) signAndSendTransaction(ctx context.Context, tx *ethereumTypes.Transaction, operation string) (*ethereumTypes.Receipt, error) {
	cc.logger.Sugar().Infow("Signing and sending transaction",
		zap.String("operation", operation),
		zap.String("from", cc.signer.GetFromAddress().Hex()),
		zap.String("to", tx.To().Hex()),
	)

	return cc.signer.SignAndSendTransaction(ctx, tx)
}

// SimulateExecuteRelayCall runs executeRelayCall with eth_call and returns the call's return data.
// A revert is reported as Reverted with the revert data attached.
func (cc *ContractCaller) SimulateExecuteRelayCall(ctx context.Context, call *RelayCall) ([]byte, error) {
	if err := call.validate(); err != nil {
		return nil, err
	}
	nonce, validity, value := call.args()
	input, err := cc.keyManagerAbi.Pack("executeRelayCall", call.Signature, nonce, validity, call.Payload)
	if err != nil {
		return nil, relayErrors.NewInvalidInput("failed to pack executeRelayCall: %v", err)
	}

	msg := ethereum.CallMsg{
		To:    &call.KeyManager,
		Value: value,
		Data:  input,
	}
	if cc.signer != nil {
		msg.From = cc.signer.GetFromAddress()
	}
	output, err := cc.reader.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, classifyCallError(err, call.KeyManager)
	}

	results, err := cc.keyManagerAbi.Unpack("executeRelayCall", output)
	if err != nil || len(results) != 1 {
		return nil, relayErrors.NewNetworkError(err, "failed to decode executeRelayCall result").
			WithDetail("keyManager", call.KeyManager.Hex())
	}
	returnData, _ := results[0].([]byte)
	return returnData, nil
}

func classifyCallError(err error, keyManager common.Address) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		reverted := relayErrors.NewReverted(err, "executeRelayCall reverted").
			WithDetail("keyManager", keyManager.Hex())
		if data, ok := dataErr.ErrorData().(string); ok {
			reverted.WithDetail("revertData", data)
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					reverted.WithDetail("reason", reason)
				}
			}
		}
		return reverted
	}
	return relayErrors.NewNetworkError(err, "failed to simulate executeRelayCall").
		WithDetail("keyManager", keyManager.Hex())
}

// ExecuteRelayCall submits the signed message from the transaction signer's own account.
// The signer pays the fees; a mined transaction with status 0 is Reverted.
func (cc *ContractCaller) ExecuteRelayCall(ctx context.Context, call *RelayCall) (*ethereumTypes.Receipt, error) {
	if err := call.validate(); err != nil {
		return nil, err
	}
	if cc.signer == nil {
		return nil, relayErrors.NewTransactionFailed(nil, "no transaction signer configured for direct execution")
	}

	txOpts, err := cc.buildTransactionOpts(ctx)
	if err != nil {
		return nil, relayErrors.NewTransactionFailed(err, "failed to build transaction options")
	}
	nonce, validity, value := call.args()
	txOpts.Value = value

	km, err := ILSP6KeyManager.NewILSP6KeyManagerTransactor(call.KeyManager, nil)
	if err != nil {
		return nil, relayErrors.NewTransactionFailed(err, "failed to create key manager transactor")
	}
	tx, err := km.ExecuteRelayCall(txOpts, call.Signature, nonce, validity, call.Payload)
	if err != nil {
		return nil, relayErrors.NewTransactionFailed(err, "failed to build executeRelayCall transaction").
			WithDetail("keyManager", call.KeyManager.Hex())
	}

	receipt, err := cc.signAndSendTransaction(ctx, tx, "ExecuteRelayCall")
	if err != nil {
		var reverted *transactionSigner.RevertedError
		if errors.As(err, &reverted) {
			return receipt, relayErrors.NewReverted(err, "executeRelayCall transaction reverted").
				WithDetail("keyManager", call.KeyManager.Hex()).
				WithDetail("txHash", reverted.Receipt.TxHash.Hex())
		}
		var unconfirmed *transactionSigner.UnconfirmedError
		if errors.As(err, &unconfirmed) {
			return nil, relayErrors.NewTransactionFailed(err, "executeRelayCall transaction not confirmed").
				WithDetail("keyManager", call.KeyManager.Hex()).
				WithDetail("txHash", unconfirmed.TxHash.Hex())
		}
		return nil, relayErrors.NewTransactionFailed(err, "failed to send executeRelayCall transaction").
			WithDetail("keyManager", call.KeyManager.Hex())
	}
	return receipt, nil
}

// FilterPermissionsVerified returns PermissionsVerified events emitted by keyManager in
// [fromBlock, toBlock]. A nil toBlock means latest; an empty signers list matches every signer.
func (cc *ContractCaller) FilterPermissionsVerified(
	ctx context.Context,
	keyManager common.Address,
	signers []common.Address,
	fromBlock uint64,
	toBlock *uint64,
) ([]*ILSP6KeyManager.ILSP6KeyManagerPermissionsVerified, error) {
	event, ok := cc.keyManagerAbi.Events["PermissionsVerified"]
	if !ok {
		return nil, relayErrors.New(relayErrors.Unknown, "PermissionsVerified missing from key manager ABI")
	}

	topics := [][]common.Hash{{event.ID}}
	if len(signers) > 0 {
		signerTopics := make([]common.Hash, len(signers))
		for i, s := range signers {
			signerTopics[i] = common.BytesToHash(s.Bytes())
		}
		topics = append(topics, signerTopics)
	}
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{keyManager},
		Topics:    topics,
	}
	if toBlock != nil {
		query.ToBlock = new(big.Int).SetUint64(*toBlock)
	}

	logs, err := cc.reader.FilterLogs(ctx, query)
	if err != nil {
		return nil, relayErrors.NewNetworkError(err, "failed to filter PermissionsVerified logs").
			WithDetail("keyManager", keyManager.Hex())
	}

	filterer, err := ILSP6KeyManager.NewILSP6KeyManagerFilterer(keyManager, nil)
	if err != nil {
		return nil, relayErrors.Wrap(relayErrors.Unknown, err, "failed to create key manager filterer")
	}
	events := make([]*ILSP6KeyManager.ILSP6KeyManagerPermissionsVerified, 0, len(logs))
	for _, l := range logs {
		ev, err := filterer.ParsePermissionsVerified(l)
		if err != nil {
			cc.logger.Sugar().Warnw("Skipping undecodable PermissionsVerified log",
				"txHash", l.TxHash.Hex(),
				"error", err,
			)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
