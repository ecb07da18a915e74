package relayClient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 30 * time.Second

	executePath = "/execute"
	quotaPath   = "/quota/"

	// maxResponseBytes bounds how much of a relay response is read
	maxResponseBytes = 1 << 20
)

// ExecuteRequest is a signed LSP25 message as accepted by the relay's execute endpoint.
type ExecuteRequest struct {
	KeyManager         common.Address
	Signature          []byte
	Nonce              *uint256.Int
	ValidityTimestamps *uint256.Int
	Payload            []byte
	Value              *uint256.Int
}

type executeBody struct {
	KeyManagerAddress  string `json:"keyManagerAddress"`
	Signature          string `json:"signature"`
	Nonce              string `json:"nonce"`
	ValidityTimestamps string `json:"validityTimestamps"`
	Payload            string `json:"payload"`
	Value              string `json:"value"`
}

// ExecuteResponse is the relay's answer to a successful execute call.
type ExecuteResponse struct {
	TransactionHash common.Hash   `json:"transactionHash"`
	ReturnData      hexutil.Bytes `json:"returnData,omitempty"`
}

type executeResponseBody struct {
	TransactionHash string `json:"transactionHash"`
	ReturnData      string `json:"returnData,omitempty"`
}

// Quota describes the relay allowance of an account. Remaining and Total are -1 when unknown.
type Quota struct {
	Remaining int64      `json:"remaining"`
	Total     int64      `json:"total"`
	ResetsAt  *time.Time `json:"resetsAt"`
}

// UnknownQuota is returned when the relay cannot report a quota.
func UnknownQuota() *Quota {
	return &Quota{Remaining: -1, Total: -1}
}

func (q *Quota) IsUnknown() bool {
	return q == nil || (q.Remaining < 0 && q.Total < 0)
}

// IRelayClient submits signed messages to a relay service.
type IRelayClient interface {
	Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResponse, error)
	GetQuota(ctx context.Context, account common.Address) *Quota
}

// ClientConfig holds the configuration for the relay client
type ClientConfig struct {
	BaseUrl string
	Logger  *zap.Logger

	// HTTPClient overrides the default client; Timeout is ignored when it is set.
	HTTPClient *http.Client
	Timeout    time.Duration

	// RequestsPerSecond enables a client-side rate limit when greater than zero.
	RequestsPerSecond float64
	Burst             int
}

// Client talks to an LSP25 relay service over HTTP
type Client struct {
	baseUrl    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

var _ IRelayClient = (*Client)(nil)

// NewClient creates a new relay client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	baseUrl := strings.TrimRight(strings.TrimSpace(config.BaseUrl), "/")
	if baseUrl == "" {
		return nil, fmt.Errorf("relay base URL is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	return &Client{
		baseUrl:    baseUrl,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     config.Logger,
	}, nil
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func decimal(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Execute posts the signed message to {base}/execute. Transport failures are NetworkError;
// a non-2xx status or an undecodable body is RelayFailed with the status and raw body.
// Execute never retries.
func (c *Client) Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResponse, error) {
	if req == nil {
		return nil, relayErrors.NewInvalidInput("execute request is nil")
	}
	body, err := json.Marshal(&executeBody{
		KeyManagerAddress:  req.KeyManager.Hex(),
		Signature:          hexutil.Encode(req.Signature),
		Nonce:              decimal(req.Nonce),
		ValidityTimestamps: decimal(req.ValidityTimestamps),
		Payload:            hexutil.Encode(req.Payload),
		Value:              decimal(req.Value),
	})
	if err != nil {
		return nil, relayErrors.NewInvalidInput("failed to encode execute request: %v", err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, relayErrors.NewNetworkError(err, "rate limiter wait aborted")
	}

	requestId := uuid.New().String()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+executePath, bytes.NewReader(body))
	if err != nil {
		return nil, relayErrors.NewInvalidInput("failed to create execute request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestId)

	c.logger.Sugar().Infow("Submitting relay call",
		"relay", c.baseUrl,
		"requestId", requestId,
		"keyManager", req.KeyManager.Hex(),
		"nonce", decimal(req.Nonce),
		"payloadBytes", len(req.Payload),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, relayErrors.NewNetworkError(err, "failed to reach relay service").
			WithDetail("requestId", requestId)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, relayErrors.NewNetworkError(err, "failed to read relay response").
			WithDetail("requestId", requestId)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Sugar().Warnw("Relay rejected call",
			"requestId", requestId,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return nil, relayErrors.NewRelayFailed(resp.StatusCode, string(raw), "relay service rejected the call").
			WithDetail("requestId", requestId)
	}

	var decoded executeResponseBody
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, malformed(resp.StatusCode, raw, requestId, "relay response is not valid JSON")
	}
	hashBytes, err := hexutil.Decode(decoded.TransactionHash)
	if err != nil || len(hashBytes) != common.HashLength {
		return nil, malformed(resp.StatusCode, raw, requestId, "relay response has no valid transactionHash")
	}
	out := &ExecuteResponse{TransactionHash: common.BytesToHash(hashBytes)}
	if decoded.ReturnData != "" {
		returnData, err := hexutil.Decode(decoded.ReturnData)
		if err != nil {
			return nil, malformed(resp.StatusCode, raw, requestId, "relay response has invalid returnData")
		}
		out.ReturnData = returnData
	}

	c.logger.Sugar().Infow("Relay accepted call",
		"requestId", requestId,
		"transactionHash", out.TransactionHash.Hex(),
	)
	return out, nil
}

func malformed(status int, raw []byte, requestId string, message string) error {
	return relayErrors.NewRelayFailed(status, string(raw), message).
		WithDetail("requestId", requestId)
}

// GetQuota reads {base}/quota/{account}. Any failure yields UnknownQuota.
func (c *Client) GetQuota(ctx context.Context, account common.Address) *Quota {
	if err := c.wait(ctx); err != nil {
		return UnknownQuota()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+quotaPath+account.Hex(), nil)
	if err != nil {
		return UnknownQuota()
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Sugar().Debugw("Quota request failed", "account", account.Hex(), "error", err)
		return UnknownQuota()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Sugar().Debugw("Quota request rejected", "account", account.Hex(), "status", resp.StatusCode)
		return UnknownQuota()
	}

	var q Quota
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&q); err != nil {
		c.logger.Sugar().Debugw("Quota response malformed", "account", account.Hex(), "error", err)
		return UnknownQuota()
	}
	return &q
}
