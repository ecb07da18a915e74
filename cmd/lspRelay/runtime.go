package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	internalAws "github.com/lsp-relay/lsp-relay-go/internal/aws"
	"github.com/lsp-relay/lsp-relay-go/pkg/chainReader"
	"github.com/lsp-relay/lsp-relay-go/pkg/channelLock"
	"github.com/lsp-relay/lsp-relay-go/pkg/channelLock/memory"
	"github.com/lsp-relay/lsp-relay-go/pkg/channelLock/redis"
	"github.com/lsp-relay/lsp-relay-go/pkg/config"
	"github.com/lsp-relay/lsp-relay-go/pkg/contractCaller/caller"
	"github.com/lsp-relay/lsp-relay-go/pkg/logger"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayClient"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayExecutor"
	"github.com/lsp-relay/lsp-relay-go/pkg/relaySigner"
	"github.com/lsp-relay/lsp-relay-go/pkg/transactionSigner"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// runtime holds everything a chain-facing command needs.
type runtime struct {
	cfg         *config.RelayConfig
	logger      *zap.Logger
	ethClient   *ethclient.Client
	chainId     *big.Int
	signer      relaySigner.IRelaySigner
	caller      *caller.ContractCaller
	relayClient *relayClient.Client
	lock        channelLock.IChannelLock
	executor    *relayExecutor.Executor
}

func configFromFlags(c *cli.Context) *config.RelayConfig {
	return &config.RelayConfig{
		RpcUrl:           c.String("rpc-url"),
		ChainID:          config.ChainId(c.Uint("chain-id")),
		KeyManager:       c.String("key-manager"),
		PrivateKey:       c.String("private-key"),
		KeystorePath:     c.String("keystore-path"),
		KeystorePassword: c.String("keystore-password"),
		AWSKMSKeyID:      c.String("aws-kms-key-id"),
		AWSRegion:        c.String("aws-region"),
		RelayerUrl:       c.String("relayer-url"),
		FallbackDirect:   c.Bool("fallback-direct"),
		RedisAddress:     c.String("redis-address"),
		Verbose:          c.Bool("verbose"),
	}
}

func newRuntime(c *cli.Context) (*runtime, error) {
	cfg := configFromFlags(c)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	ctx := c.Context
	ethClient, err := chainReader.Dial(ctx, cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", cfg.RpcUrl, err)
	}

	chainId, err := ethClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if cfg.ChainID != 0 && uint64(cfg.ChainID) != chainId.Uint64() {
		return nil, fmt.Errorf("configured chain ID %d does not match RPC chain ID %s", cfg.ChainID, chainId)
	}
	cfg.ChainID = config.ChainId(chainId.Uint64())
	if name, ok := config.ChainIdToName[cfg.ChainID]; ok {
		cfg.ChainName = name
	}

	rt := &runtime{cfg: cfg, logger: l, ethClient: ethClient, chainId: chainId}

	txSigner, err := rt.loadSigners(ctx)
	if err != nil {
		return nil, err
	}

	rt.caller, err = caller.NewContractCaller(ethClient, txSigner, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract caller: %w", err)
	}

	if url := cfg.ResolvedRelayerUrl(); url != "" {
		rt.relayClient, err = relayClient.NewClient(&relayClient.ClientConfig{
			BaseUrl: url,
			Logger:  l,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create relay client: %w", err)
		}
	}

	if cfg.RedisAddress != "" {
		rt.lock, err = redis.NewRedisChannelLock(&redis.RedisConfig{Address: cfg.RedisAddress}, l)
		if err != nil {
			return nil, fmt.Errorf("failed to create channel lock: %w", err)
		}
	} else {
		rt.lock = memory.NewMemoryChannelLock()
	}

	executorCfg := &relayExecutor.ExecutorConfig{
		ContractCaller: rt.caller,
		Signer:         rt.signer,
		ChainId:        chainId,
		ChannelLock:    rt.lock,
		Logger:         l,
	}
	// a nil *relayClient.Client must not become a non-nil interface
	if rt.relayClient != nil {
		executorCfg.RelayClient = rt.relayClient
	}
	rt.executor, err = relayExecutor.NewExecutor(executorCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	l.Sugar().Debugw("Runtime ready",
		"chainId", chainId.String(),
		"chainName", cfg.ChainName,
		"keyManager", cfg.KeyManager,
		"signer", rt.signer.Address().Hex(),
		"signerSource", cfg.SignerSource(),
		"relayer", cfg.ResolvedRelayerUrl(),
	)
	return rt, nil
}

// loadSigners builds the relay signer and, for local keys, the transaction signer used by the
// direct path. KMS-held keys sign relay messages only.
func (rt *runtime) loadSigners(ctx context.Context) (transactionSigner.ITransactionSigner, error) {
	cfg := rt.cfg
	switch cfg.SignerSource() {
	case config.SignerSource_PrivateKey:
		signer, err := relaySigner.NewPrivateKeyRelaySigner(cfg.PrivateKey, rt.logger)
		if err != nil {
			return nil, err
		}
		rt.signer = signer
		txSigner, err := transactionSigner.NewTransactionSigner(&transactionSigner.SignerConfig{PrivateKey: cfg.PrivateKey}, rt.ethClient, rt.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction signer: %w", err)
		}
		return txSigner, nil

	case config.SignerSource_Keystore:
		key, err := relaySigner.ReadKeystore(cfg.KeystorePath, cfg.KeystorePassword)
		if err != nil {
			return nil, err
		}
		signer, err := relaySigner.NewInMemoryRelaySigner(key, rt.logger)
		if err != nil {
			return nil, err
		}
		rt.signer = signer
		txSigner, err := transactionSigner.NewPrivateKeySignerFromKey(key, rt.ethClient, rt.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction signer: %w", err)
		}
		return txSigner, nil

	case config.SignerSource_AWSKMS:
		awsCfg, err := internalAws.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		identity, err := internalAws.GetCallerIdentity(ctx, awsCfg)
		if err != nil {
			return nil, err
		}
		rt.logger.Sugar().Infow("Using AWS identity", "arn", internalAws.IdentityArn(identity))
		signer, err := relaySigner.NewAWSKMSRelaySignerFromConfig(ctx, awsCfg, cfg.AWSKMSKeyID, rt.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create KMS signer: %w", err)
		}
		rt.signer = signer
		return nil, nil

	default:
		return nil, fmt.Errorf("no signer configured")
	}
}

func (rt *runtime) Close() {
	if rt.lock != nil {
		_ = rt.lock.Close()
	}
	if rt.ethClient != nil {
		rt.ethClient.Close()
	}
	_ = rt.logger.Sync()
}
