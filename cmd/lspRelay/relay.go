package main

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/authorization"
	"github.com/lsp-relay/lsp-relay-go/pkg/nonceChannel"
	"github.com/lsp-relay/lsp-relay-go/pkg/permissions"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayExecutor"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayMessage"
	"github.com/lsp-relay/lsp-relay-go/pkg/scope"
	"github.com/urfave/cli/v2"
)

type executionOutput struct {
	Id                 string                     `json:"id"`
	ResubmissionOf     string                     `json:"resubmissionOf,omitempty"`
	State              relayExecutor.State        `json:"state"`
	KeyManager         string                     `json:"keyManager"`
	Signer             string                     `json:"signer,omitempty"`
	Nonce              string                     `json:"nonce,omitempty"`
	ValidityTimestamps string                     `json:"validityTimestamps"`
	Value              string                     `json:"value"`
	Payload            string                     `json:"payload"`
	Digest             string                     `json:"digest,omitempty"`
	Signature          string                     `json:"signature,omitempty"`
	Result             *relayExecutor.Result      `json:"result,omitempty"`
	History            []relayExecutor.Transition `json:"history"`
	Error              string                     `json:"error,omitempty"`
}

func describe(exec *relayExecutor.Execution) *executionOutput {
	out := &executionOutput{
		Id:         exec.Id.String(),
		State:      exec.State(),
		KeyManager: exec.Operation.KeyManager.Hex(),
		History:    exec.History(),
	}
	if exec.ResubmissionOf != nil {
		out.ResubmissionOf = exec.ResubmissionOf.String()
	}
	if exec.Nonce != nil {
		out.Nonce = exec.Nonce.Dec()
	}
	if exec.Message != nil {
		out.ValidityTimestamps = exec.Message.ValidityTimestamps.Decimal()
		out.Value = exec.Message.Value.Dec()
		out.Payload = hexutil.Encode(exec.Message.Payload)
	}
	if exec.Signed != nil {
		out.Signer = exec.Signed.Signer.Hex()
		out.Digest = exec.Signed.Digest.Hex()
		out.Signature = hexutil.Encode(exec.Signed.Signature)
	}
	if exec.Result != nil {
		out.Result = exec.Result
	}
	if exec.Err != nil {
		out.Error = exec.Err.Error()
	}
	return out
}

func parseWei(s string, name string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, relayErrors.NewInvalidInput("invalid --%s %q: %v", name, s, err)
	}
	return v, nil
}

func validityFromFlags(c *cli.Context) (relayMessage.ValidityTimestamps, error) {
	duration := c.Int64("valid-for")
	if duration == 0 {
		return relayMessage.Indefinite(), nil
	}
	return relayMessage.CreateValidityTimestamps(time.Now(), c.Int64("valid-from"), duration)
}

// payloadFromFlags returns --payload, or an execute() call on the profile built from --target.
func payloadFromFlags(c *cli.Context) ([]byte, error) {
	if raw := c.String("payload"); raw != "" {
		payload, err := hexutil.Decode(raw)
		if err != nil {
			return nil, relayErrors.NewInvalidInput("invalid --payload: %v", err)
		}
		return payload, nil
	}
	if c.String("target") == "" {
		return nil, relayErrors.NewInvalidInput("either --payload or --target is required")
	}
	target, err := scope.ParseAddress(c.String("target"))
	if err != nil {
		return nil, err
	}
	operation, err := authorization.ParseOperation(c.String("operation"))
	if err != nil {
		return nil, err
	}
	callValue, err := parseWei(c.String("call-value"), "call-value")
	if err != nil {
		return nil, err
	}
	var data []byte
	if raw := c.String("call-data"); raw != "" {
		if data, err = hexutil.Decode(raw); err != nil {
			return nil, relayErrors.NewInvalidInput("invalid --call-data: %v", err)
		}
	}
	return authorization.BuildProfileExecute(operation, target, callValue.ToBig(), data)
}

func operationFromFlags(c *cli.Context, rt *runtime, payload []byte) (*relayExecutor.Operation, error) {
	channelId, err := nonceChannel.ParseChannelId(c.String("channel-id"))
	if err != nil {
		return nil, err
	}
	validity, err := validityFromFlags(c)
	if err != nil {
		return nil, err
	}
	value, err := parseWei(c.String("value"), "value")
	if err != nil {
		return nil, err
	}
	return &relayExecutor.Operation{
		KeyManager:         rt.cfg.KeyManagerAddress(),
		Payload:            payload,
		Value:              value,
		ChannelId:          channelId,
		ValidityTimestamps: validity,
	}, nil
}

func submitOptions(c *cli.Context) relayExecutor.SubmitOptions {
	return relayExecutor.SubmitOptions{
		Direct:   c.Bool("direct"),
		Simulate: c.Bool("simulate"),
	}
}

// execute runs op and applies the fallback policy: a relay rejection is resubmitted directly
// with the same signature when fallback is enabled.
func execute(c *cli.Context, rt *runtime, op *relayExecutor.Operation) error {
	opts := submitOptions(c)
	exec, err := rt.executor.Execute(c.Context, op, opts)
	if err != nil && exec != nil && exec.State() == relayExecutor.State_RelayRejected && rt.cfg.FallbackDirect {
		rt.logger.Sugar().Warnw("Relay rejected the call, falling back to direct submission",
			"executionId", exec.Id.String(),
			"error", err,
		)
		if printErr := printJSON(describe(exec)); printErr != nil {
			return printErr
		}
		retry, retryErr := exec.ForResubmission()
		if retryErr != nil {
			return retryErr
		}
		opts.Direct = true
		exec, err = rt.executor.Submit(c.Context, retry, opts)
	}
	if exec != nil {
		if printErr := printJSON(describe(exec)); printErr != nil {
			return printErr
		}
	}
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s via %s: %s\n", exec.State(), exec.Result.Path, exec.Result.TransactionHash.Hex())
	return nil
}

func nonceCommand(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	channelId, err := nonceChannel.ParseChannelId(c.String("channel-id"))
	if err != nil {
		return err
	}
	signer := rt.signer.Address()
	if s := c.String("signer"); s != "" {
		if signer, err = scope.ParseAddress(s); err != nil {
			return err
		}
	}
	nonce, err := rt.caller.GetNonce(c.Context, rt.cfg.KeyManagerAddress(), signer, channelId)
	if err != nil {
		return err
	}
	fmt.Println(nonce.Dec())
	return nil
}

func signCommand(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	payload, err := payloadFromFlags(c)
	if err != nil {
		return err
	}
	op, err := operationFromFlags(c, rt, payload)
	if err != nil {
		return err
	}
	exec, err := rt.executor.Prepare(c.Context, op)
	if exec != nil {
		exec.Release()
	}
	if err != nil {
		return err
	}
	if err := relayExecutor.VerifySignedExecution(exec, rt.signer.Address()); err != nil {
		return err
	}
	return printJSON(describe(exec))
}

func executeCommand(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	payload, err := payloadFromFlags(c)
	if err != nil {
		return err
	}
	op, err := operationFromFlags(c, rt, payload)
	if err != nil {
		return err
	}
	return execute(c, rt, op)
}

func grantFromFlags(c *cli.Context) (*authorization.ControllerGrant, error) {
	controller, err := scope.ParseAddress(c.String("controller"))
	if err != nil {
		return nil, err
	}

	var mask permissions.Bitmask
	switch {
	case c.String("mask") != "" && len(c.StringSlice("permission")) > 0:
		return nil, relayErrors.NewInvalidInput("use either --mask or --permission, not both")
	case c.String("mask") != "":
		if mask, err = permissions.ParseBitmask(c.String("mask")); err != nil {
			return nil, err
		}
	default:
		if mask, err = permissions.CombineNames(c.StringSlice("permission")...); err != nil {
			return nil, err
		}
	}

	report := permissions.ClassifyRisk(mask)
	for _, w := range report.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	if !report.Valid && !c.Bool("allow-risky") {
		for _, r := range report.Risks {
			fmt.Printf("❌ %s\n", r)
		}
		return nil, relayErrors.NewInvalidInput("refusing to grant risky permissions without --allow-risky")
	}

	grant := &authorization.ControllerGrant{Controller: controller, Permissions: mask}
	allowedCalls, err := allowedCallsFromFlags(c, "allowed-")
	if err != nil {
		return nil, err
	}
	if len(allowedCalls.CallTypes) > 0 || !allowedCalls.IsEmpty() {
		grant.AllowedCalls = allowedCalls
	}
	if keys := c.StringSlice("allowed-data-key"); len(keys) > 0 {
		if grant.AllowedDataKeys, err = dataKeyPrefixes(keys); err != nil {
			return nil, err
		}
	}
	return grant, nil
}

func authorizeControllerCommand(c *cli.Context) error {
	grant, err := grantFromFlags(c)
	if err != nil {
		return err
	}

	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	profile, err := rt.caller.GetTarget(c.Context, rt.cfg.KeyManagerAddress())
	if err != nil {
		return err
	}
	update, err := authorization.PlanAuthorizeController(c.Context, rt.caller, profile, grant)
	if err != nil {
		return err
	}
	fmt.Printf("Authorizing %s on profile %s (%d data keys, new controller: %t)\n",
		grant.Controller.Hex(), profile.Hex(), len(update.Keys), update.NewController)

	op, err := operationFromFlags(c, rt, update.Calldata)
	if err != nil {
		return err
	}
	return execute(c, rt, op)
}

func quotaCommand(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.relayClient == nil {
		return fmt.Errorf("no relay service configured for chain %d", rt.cfg.ChainID)
	}
	var account common.Address
	if s := c.String("account"); s != "" {
		if account, err = scope.ParseAddress(s); err != nil {
			return err
		}
	} else if account, err = rt.caller.GetTarget(c.Context, rt.cfg.KeyManagerAddress()); err != nil {
		return err
	}
	return printJSON(rt.relayClient.GetQuota(c.Context, account))
}

type historyEntry struct {
	BlockNumber     uint64 `json:"blockNumber"`
	TransactionHash string `json:"transactionHash"`
	Signer          string `json:"signer"`
	Value           string `json:"value"`
	Selector        string `json:"selector"`
}

func historyCommand(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	signer := rt.signer.Address()
	if s := c.String("signer"); s != "" {
		if signer, err = scope.ParseAddress(s); err != nil {
			return err
		}
	}
	var toBlock *uint64
	if c.Uint64("to-block") != 0 {
		to := c.Uint64("to-block")
		toBlock = &to
	}
	events, err := rt.caller.FilterPermissionsVerified(c.Context, rt.cfg.KeyManagerAddress(), []common.Address{signer}, c.Uint64("from-block"), toBlock)
	if err != nil {
		return err
	}
	entries := make([]historyEntry, 0, len(events))
	for _, e := range events {
		value := e.Value
		if value == nil {
			value = new(big.Int)
		}
		entries = append(entries, historyEntry{
			BlockNumber:     e.Raw.BlockNumber,
			TransactionHash: e.Raw.TxHash.Hex(),
			Signer:          e.Signer.Hex(),
			Value:           value.String(),
			Selector:        hexutil.Encode(e.Selector[:]),
		})
	}
	return printJSON(entries)
}

type controllerEntry struct {
	Controller      string   `json:"controller"`
	Permissions     string   `json:"permissions"`
	Names           []string `json:"names"`
	AllowedCalls    []string `json:"allowedCalls,omitempty"`
	AllowedDataKeys []string `json:"allowedDataKeys,omitempty"`
}

func controllersCommand(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	profile, err := rt.caller.GetTarget(c.Context, rt.cfg.KeyManagerAddress())
	if err != nil {
		return err
	}
	controllers, err := rt.caller.GetControllers(c.Context, profile)
	if err != nil {
		return err
	}
	entries := make([]controllerEntry, 0, len(controllers))
	for _, controller := range controllers {
		p, err := rt.caller.GetControllerPermissions(c.Context, profile, controller)
		if err != nil {
			return err
		}
		entry := controllerEntry{
			Controller:  controller.Hex(),
			Permissions: p.Permissions.Hex(),
			Names:       permissions.DecodeNames(p.Permissions),
		}
		for _, call := range p.AllowedCalls {
			entry.AllowedCalls = append(entry.AllowedCalls, call.String())
		}
		for _, key := range p.AllowedDataKeys {
			entry.AllowedDataKeys = append(entry.AllowedDataKeys, hexutil.Encode(key))
		}
		entries = append(entries, entry)
	}
	return printJSON(entries)
}
