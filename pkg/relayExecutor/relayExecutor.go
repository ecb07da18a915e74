package relayExecutor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/chainReader"
	"github.com/lsp-relay/lsp-relay-go/pkg/channelLock"
	"github.com/lsp-relay/lsp-relay-go/pkg/contractCaller"
	"github.com/lsp-relay/lsp-relay-go/pkg/contractCaller/caller"
	"github.com/lsp-relay/lsp-relay-go/pkg/nonceChannel"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayClient"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayMessage"
	"github.com/lsp-relay/lsp-relay-go/pkg/relaySigner"
	"github.com/lsp-relay/lsp-relay-go/pkg/transactionSigner"
	"go.uber.org/zap"
)

// minPayloadLength is a 4-byte selector; the Key Manager rejects anything shorter.
const minPayloadLength = 4

// Operation is one action to authorize on the profile behind a key manager.
type Operation struct {
	KeyManager common.Address
	// Payload is the calldata executed on the key manager's target.
	Payload []byte
	// Value is forwarded with the call; nil is zero.
	Value *uint256.Int
	// ChannelId selects the nonce lane; nil is the default channel.
	ChannelId *big.Int
	// ValidityTimestamps bounds when the message may execute; the zero value never expires.
	ValidityTimestamps relayMessage.ValidityTimestamps
}

// Path is how a signed execution reached the chain.
type Path string

const (
	Path_Direct Path = "direct"
	Path_Relay  Path = "relay"
)

// SubmitOptions controls dispatch of a signed execution.
type SubmitOptions struct {
	// Direct forces submission from the signer's own transaction even when a relay is configured.
	Direct bool
	// Simulate runs executeRelayCall as an eth_call before a direct submission to capture return data.
	Simulate bool
}

// Result is the outcome of a confirmed execution.
type Result struct {
	Path            Path              `json:"path"`
	TransactionHash common.Hash       `json:"transactionHash"`
	ReturnData      []byte            `json:"returnData,omitempty"`
	Receipt         *ethTypes.Receipt `json:"-"`
}

// Execution tracks a single operation through the relay pipeline.
type Execution struct {
	Id        uuid.UUID
	Operation *Operation
	ChainId   *uint256.Int
	Nonce     *uint256.Int
	Message   *relayMessage.Message
	Signed    *relaySigner.SignedMessage
	Result    *Result
	Err       error

	// ResubmissionOf is set when this execution reuses the signature of an earlier one.
	ResubmissionOf *uuid.UUID

	state   State
	history []Transition
	release func()
	now     func() time.Time
}

func newExecution(op *Operation, now func() time.Time) *Execution {
	return &Execution{
		Id:        uuid.New(),
		Operation: op,
		state:     State_Unsigned,
		now:       now,
	}
}

func (e *Execution) State() State {
	return e.state
}

// History returns the recorded transitions, oldest first.
func (e *Execution) History() []Transition {
	out := make([]Transition, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Execution) transition(to State, cause error) error {
	if !e.state.canTransitionTo(to) {
		return &InvalidTransitionError{From: e.state, To: to}
	}
	t := Transition{From: e.state, To: to, At: e.now()}
	if cause != nil {
		t.Error = cause.Error()
		e.Err = cause
	}
	e.history = append(e.history, t)
	e.state = to
	if to.IsTerminal() {
		e.Release()
	}
	return nil
}

// Release frees the channel lock held by the execution, if any. It is called automatically on
// reaching a terminal state; callers that Prepare without submitting must call it themselves.
func (e *Execution) Release() {
	if e.release != nil {
		e.release()
		e.release = nil
	}
}

// ForResubmission returns a new execution in state Signed carrying the same signed message.
// Only relay-rejected executions qualify, since their nonce was not consumed.
func (e *Execution) ForResubmission() (*Execution, error) {
	if e.state != State_RelayRejected {
		return nil, &InvalidTransitionError{From: e.state, To: State_Signed}
	}
	origin := e.Id
	next := &Execution{
		Id:             uuid.New(),
		Operation:      e.Operation,
		ChainId:        e.ChainId,
		Nonce:          e.Nonce,
		Message:        e.Message,
		Signed:         e.Signed,
		ResubmissionOf: &origin,
		state:          State_Signed,
		now:            e.now,
	}
	for _, t := range e.history {
		next.history = append(next.history, t)
		if t.To == State_Signed {
			break
		}
	}
	return next, nil
}

func (e *Execution) relayCall() *caller.RelayCall {
	return &caller.RelayCall{
		KeyManager:         e.Signed.KeyManager,
		Signature:          e.Signed.Signature,
		Nonce:              e.Nonce,
		ValidityTimestamps: e.Message.ValidityTimestamps.Uint256(),
		Value:              e.Message.Value,
		Payload:            e.Message.Payload,
	}
}

// ExecutorConfig wires the executor's collaborators.
type ExecutorConfig struct {
	ContractCaller contractCaller.IContractCaller
	Signer         relaySigner.IRelaySigner
	// RelayClient is optional; without it every execution is submitted directly.
	RelayClient relayClient.IRelayClient
	// ChainId is used as is when set; otherwise it is read once from ChainIdReader.
	ChainId       *big.Int
	ChainIdReader chainReader.ChainIdReader
	// ChannelLock is optional and held from nonce fetch to a terminal state.
	ChannelLock channelLock.IChannelLock
	Logger      *zap.Logger
	Clock       func() time.Time
}

// Executor drives operations from nonce fetch to a terminal state.
type Executor struct {
	contractCaller contractCaller.IContractCaller
	signer         relaySigner.IRelaySigner
	relayClient    relayClient.IRelayClient
	chainIdReader  chainReader.ChainIdReader
	lock           channelLock.IChannelLock
	logger         *zap.Logger
	now            func() time.Time

	// chainIdMu guards chainId, which is filled on first use when only a reader is configured.
	chainIdMu sync.Mutex
	chainId   *uint256.Int
}

func NewExecutor(cfg *ExecutorConfig) (*Executor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("executor config is required")
	}
	if cfg.ContractCaller == nil {
		return nil, fmt.Errorf("contract caller is required")
	}
	if cfg.Signer == nil {
		return nil, fmt.Errorf("relay signer is required")
	}
	if cfg.ChainId == nil && cfg.ChainIdReader == nil {
		return nil, fmt.Errorf("either chain id or chain id reader is required")
	}
	e := &Executor{
		contractCaller: cfg.ContractCaller,
		signer:         cfg.Signer,
		relayClient:    cfg.RelayClient,
		chainIdReader:  cfg.ChainIdReader,
		lock:           cfg.ChannelLock,
		logger:         cfg.Logger,
		now:            cfg.Clock,
	}
	if cfg.ChainId != nil {
		id, overflow := uint256.FromBig(cfg.ChainId)
		if overflow || id.IsZero() {
			return nil, fmt.Errorf("invalid chain id %s", cfg.ChainId)
		}
		e.chainId = id
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

func (ex *Executor) resolveChainId(ctx context.Context) (*uint256.Int, error) {
	ex.chainIdMu.Lock()
	defer ex.chainIdMu.Unlock()
	if ex.chainId != nil {
		return new(uint256.Int).Set(ex.chainId), nil
	}
	id, err := ex.chainIdReader.ChainID(ctx)
	if err != nil {
		return nil, relayErrors.NewNetworkError(err, "failed to fetch chain id")
	}
	chainId, overflow := uint256.FromBig(id)
	if overflow || chainId.IsZero() {
		return nil, relayErrors.NewNetworkError(nil, fmt.Sprintf("node reported invalid chain id %s", id))
	}
	ex.chainId = chainId
	return new(uint256.Int).Set(chainId), nil
}

func (ex *Executor) validate(op *Operation) error {
	if op == nil {
		return relayErrors.NewInvalidInput("operation is required")
	}
	if op.KeyManager == (common.Address{}) {
		return relayErrors.NewInvalidInput("key manager address is required")
	}
	if len(op.Payload) < minPayloadLength {
		return relayErrors.NewInvalidInput("payload must be at least %d bytes, got %d", minPayloadLength, len(op.Payload))
	}
	if op.ChannelId != nil {
		if err := nonceChannel.ValidateChannelId(op.ChannelId); err != nil {
			return err
		}
	}
	v := op.ValidityTimestamps
	if !v.IsIndefinite() {
		if end := v.End(); end != 0 && v.Start() > end {
			return relayErrors.NewInvalidInput("validity window starts after it ends")
		}
		if err := v.CheckAt(ex.now()); errors.Is(err, relayMessage.ErrExpired) {
			return relayErrors.NewInvalidInput("validity window has already ended")
		}
	}
	return nil
}

// Prepare fetches the nonce, builds the canonical message and signs it. The returned execution is
// in state Signed and has not been submitted. On failure the execution stops at the state it had
// reached and the error carries a relayErrors kind.
func (ex *Executor) Prepare(ctx context.Context, op *Operation) (*Execution, error) {
	if err := ex.validate(op); err != nil {
		return nil, err
	}
	chainId, err := ex.resolveChainId(ctx)
	if err != nil {
		return nil, err
	}

	exec := newExecution(op, ex.now)
	exec.ChainId = chainId
	channelId := op.ChannelId
	if channelId == nil {
		channelId = nonceChannel.DefaultChannel
	}
	signer := ex.signer.Address()

	if ex.lock != nil {
		release, err := ex.lock.Acquire(ctx, signer, channelId)
		if err != nil {
			return exec, relayErrors.Ensure(relayErrors.NetworkError, err, "failed to acquire channel lock")
		}
		exec.release = release
	}

	fail := func(err error) (*Execution, error) {
		exec.Err = err
		exec.Release()
		ex.logger.Sugar().Warnw("Relay execution aborted before submission",
			"executionId", exec.Id.String(),
			"state", exec.state,
			"error", err,
		)
		return exec, err
	}

	nonce, err := ex.contractCaller.GetNonce(ctx, op.KeyManager, signer, channelId)
	if err != nil {
		return fail(relayErrors.Ensure(relayErrors.NetworkError, err, "failed to fetch nonce"))
	}
	exec.Nonce = nonce
	if err := exec.transition(State_NonceFetched, nil); err != nil {
		return fail(err)
	}

	value := op.Value
	if value == nil {
		value = new(uint256.Int)
	}
	exec.Message = relayMessage.NewMessage(chainId, nonce, op.ValidityTimestamps, value, op.Payload)
	if _, err := exec.Message.Encode(); err != nil {
		return fail(err)
	}
	if err := exec.transition(State_MessageBuilt, nil); err != nil {
		return fail(err)
	}

	signed, err := relaySigner.SignRelayMessage(ctx, ex.signer, op.KeyManager, exec.Message)
	if err != nil {
		return fail(err)
	}
	exec.Signed = signed
	if err := exec.transition(State_Signed, nil); err != nil {
		return fail(err)
	}

	ex.logger.Sugar().Infow("Relay message signed",
		"executionId", exec.Id.String(),
		"keyManager", op.KeyManager.Hex(),
		"signer", signer.Hex(),
		"nonce", nonce.Dec(),
		"validityTimestamps", op.ValidityTimestamps.Decimal(),
		"digest", signed.Digest.Hex(),
	)
	return exec, nil
}

// Submit dispatches a signed execution and drives it to a terminal state. The relay is used
// unless opts.Direct is set or no relay client is configured. Submit does not retry and never
// falls back from the relay to the direct path.
func (ex *Executor) Submit(ctx context.Context, exec *Execution, opts SubmitOptions) (*Execution, error) {
	if exec == nil {
		return nil, relayErrors.NewInvalidInput("execution is required")
	}
	if exec.state != State_Signed {
		return exec, &InvalidTransitionError{From: exec.state, To: State_Submitted}
	}
	if opts.Direct || ex.relayClient == nil {
		return ex.submitDirect(ctx, exec, opts)
	}
	return ex.submitRelay(ctx, exec)
}

func (ex *Executor) submitDirect(ctx context.Context, exec *Execution, opts SubmitOptions) (*Execution, error) {
	call := exec.relayCall()

	var returnData []byte
	if opts.Simulate {
		out, err := ex.contractCaller.SimulateExecuteRelayCall(ctx, call)
		if err != nil {
			// still Signed: nothing was broadcast
			exec.Err = err
			exec.Release()
			return exec, err
		}
		returnData = out
	}

	if err := exec.transition(State_Submitted, nil); err != nil {
		return exec, err
	}
	ex.logger.Sugar().Infow("Submitting relay call directly",
		"executionId", exec.Id.String(),
		"keyManager", call.KeyManager.Hex(),
	)

	receipt, err := ex.contractCaller.ExecuteRelayCall(ctx, call)
	if err != nil {
		err = relayErrors.Ensure(relayErrors.TransactionFailed, err, "direct submission failed")
		var unconfirmed *transactionSigner.UnconfirmedError
		switch {
		case receipt != nil:
			exec.Result = &Result{Path: Path_Direct, TransactionHash: receipt.TxHash, Receipt: receipt}
		case errors.As(err, &unconfirmed):
			// sent but not awaited; the hash lets callers reconcile
			exec.Result = &Result{Path: Path_Direct, TransactionHash: unconfirmed.TxHash}
		}
		_ = exec.transition(State_Reverted, err)
		return exec, err
	}
	exec.Result = &Result{
		Path:            Path_Direct,
		TransactionHash: receipt.TxHash,
		ReturnData:      returnData,
		Receipt:         receipt,
	}
	if err := exec.transition(State_Confirmed, nil); err != nil {
		return exec, err
	}
	ex.logger.Sugar().Infow("Relay call confirmed",
		"executionId", exec.Id.String(),
		"path", Path_Direct,
		"transactionHash", receipt.TxHash.Hex(),
	)
	return exec, nil
}

func (ex *Executor) submitRelay(ctx context.Context, exec *Execution) (*Execution, error) {
	if err := exec.transition(State_Submitted, nil); err != nil {
		return exec, err
	}
	resp, err := ex.relayClient.Execute(ctx, &relayClient.ExecuteRequest{
		KeyManager:         exec.Signed.KeyManager,
		Signature:          exec.Signed.Signature,
		Nonce:              exec.Nonce,
		ValidityTimestamps: exec.Message.ValidityTimestamps.Uint256(),
		Payload:            exec.Message.Payload,
		Value:              exec.Message.Value,
	})
	if err != nil {
		err = relayErrors.Ensure(relayErrors.RelayFailed, err, "relay submission failed")
		_ = exec.transition(State_RelayRejected, err)
		return exec, err
	}
	exec.Result = &Result{
		Path:            Path_Relay,
		TransactionHash: resp.TransactionHash,
		ReturnData:      resp.ReturnData,
	}
	if err := exec.transition(State_Confirmed, nil); err != nil {
		return exec, err
	}
	ex.logger.Sugar().Infow("Relay call confirmed",
		"executionId", exec.Id.String(),
		"path", Path_Relay,
		"transactionHash", resp.TransactionHash.Hex(),
	)
	return exec, nil
}

// Execute prepares and submits op.
func (ex *Executor) Execute(ctx context.Context, op *Operation, opts SubmitOptions) (*Execution, error) {
	exec, err := ex.Prepare(ctx, op)
	if err != nil {
		return exec, err
	}
	return ex.Submit(ctx, exec, opts)
}

// ExecuteBatch runs ops one after another, each to a terminal state before the next nonce is read.
// It stops at the first failure and returns every execution attempted so far, the failed one last.
func (ex *Executor) ExecuteBatch(ctx context.Context, ops []*Operation, opts SubmitOptions) ([]*Execution, error) {
	if len(ops) == 0 {
		return nil, relayErrors.NewInvalidInput("batch is empty")
	}
	for i, op := range ops {
		if err := ex.validate(op); err != nil {
			return nil, fmt.Errorf("batch operation %d: %w", i, err)
		}
	}

	results := make([]*Execution, 0, len(ops))
	for i, op := range ops {
		exec, err := ex.Execute(ctx, op, opts)
		if exec != nil {
			results = append(results, exec)
		}
		if err != nil {
			ex.logger.Sugar().Warnw("Batch stopped",
				"index", i,
				"total", len(ops),
				"error", err,
			)
			return results, fmt.Errorf("batch operation %d: %w", i, err)
		}
	}
	return results, nil
}

// VerifySignedExecution re-derives the digest from the execution's message and checks that it
// was signed by expected.
func VerifySignedExecution(exec *Execution, expected common.Address) error {
	if exec == nil || exec.Signed == nil || exec.Message == nil {
		return relayErrors.NewInvalidInput("execution has not been signed")
	}
	if exec.Signed.Message != exec.Message {
		return relayErrors.NewInvalidSignature("signed message does not belong to execution")
	}
	digest, err := digestOf(exec)
	if err != nil {
		return err
	}
	if digest != exec.Signed.Digest {
		return relayErrors.NewInvalidSignature("digest does not match message")
	}
	return relaySigner.Verify(digest, exec.Signed.Signature, expected)
}

func digestOf(exec *Execution) (common.Hash, error) {
	encoded, err := exec.Message.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return relaySigner.ComputeDigest(exec.Signed.KeyManager, encoded), nil
}
