package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for relay configuration
const (
	EnvRPCURL           = "LSP_RELAY_RPC_URL"
	EnvChainID          = "LSP_RELAY_CHAIN_ID"
	EnvKeyManager       = "LSP_RELAY_KEY_MANAGER"
	EnvPrivateKey       = "LSP_RELAY_PRIVATE_KEY"
	EnvKeystorePath     = "LSP_RELAY_KEYSTORE_PATH"
	EnvKeystorePassword = "LSP_RELAY_KEYSTORE_PASSWORD"
	EnvAWSKMSKeyID      = "LSP_RELAY_AWS_KMS_KEY_ID"
	EnvAWSRegion        = "LSP_RELAY_AWS_REGION"
	EnvRelayerURL       = "LSP_RELAY_RELAYER_URL"
	EnvFallbackDirect   = "LSP_RELAY_FALLBACK_DIRECT"
	EnvRedisAddress     = "LSP_RELAY_REDIS_ADDRESS"
	EnvVerbose          = "LSP_RELAY_VERBOSE"
)

type ChainId uint

const (
	ChainId_LuksoMainnet ChainId = 42
	ChainId_LuksoTestnet ChainId = 4201
	ChainId_Anvil        ChainId = 31337
)

type ChainName string

const (
	ChainName_LuksoMainnet ChainName = "lukso"
	ChainName_LuksoTestnet ChainName = "lukso-testnet"
	ChainName_Anvil        ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_LuksoMainnet: ChainName_LuksoMainnet,
	ChainId_LuksoTestnet: ChainName_LuksoTestnet,
	ChainId_Anvil:        ChainName_Anvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_LuksoMainnet: ChainId_LuksoMainnet,
	ChainName_LuksoTestnet: ChainId_LuksoTestnet,
	ChainName_Anvil:        ChainId_Anvil,
}

// DefaultRelayerUrls are the public relay services per chain. Local chains have none.
var DefaultRelayerUrls = map[ChainId]string{
	ChainId_LuksoMainnet: "https://relayer.mainnet.lukso.network/api",
	ChainId_LuksoTestnet: "https://relayer.testnet.lukso.network/api",
	ChainId_Anvil:        "",
}

// GetDefaultRelayerUrl returns the relay service for chainId, or "" when none is known.
func GetDefaultRelayerUrl(chainId ChainId) string {
	return DefaultRelayerUrls[chainId]
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_LuksoMainnet,
		ChainId_LuksoTestnet,
		ChainId_Anvil,
	}
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (lukso), %d (lukso-testnet), %d (anvil)",
		ChainId_LuksoMainnet, ChainId_LuksoTestnet, ChainId_Anvil)
}

type SignerSource string

const (
	SignerSource_None       SignerSource = ""
	SignerSource_PrivateKey SignerSource = "privateKey"
	SignerSource_Keystore   SignerSource = "keystore"
	SignerSource_AWSKMS     SignerSource = "awsKms"
)

// RelayConfig is everything needed to sign and submit relay calls for one key manager.
type RelayConfig struct {
	// Chain configuration
	RpcUrl    string    `json:"rpcUrl" yaml:"rpcUrl"`
	ChainID   ChainId   `json:"chainId" yaml:"chainId"`
	ChainName ChainName `json:"chainName,omitempty" yaml:"chainName,omitempty"`

	KeyManager string `json:"keyManager" yaml:"keyManager"`

	// Signer: exactly one of PrivateKey, KeystorePath, AWSKMSKeyID
	PrivateKey       string `json:"privateKey,omitempty" yaml:"privateKey,omitempty"`
	KeystorePath     string `json:"keystorePath,omitempty" yaml:"keystorePath,omitempty"`
	KeystorePassword string `json:"keystorePassword,omitempty" yaml:"keystorePassword,omitempty"`
	AWSKMSKeyID      string `json:"awsKmsKeyId,omitempty" yaml:"awsKmsKeyId,omitempty"`
	AWSRegion        string `json:"awsRegion,omitempty" yaml:"awsRegion,omitempty"`

	// Relay service; empty means the chain default, which may be none
	RelayerUrl     string `json:"relayerUrl,omitempty" yaml:"relayerUrl,omitempty"`
	FallbackDirect bool   `json:"fallbackDirect" yaml:"fallbackDirect"`

	RedisAddress string `json:"redisAddress,omitempty" yaml:"redisAddress,omitempty"`

	Verbose bool `json:"verbose" yaml:"verbose"`
}

// SignerSource reports which signer the configuration selects.
func (c *RelayConfig) SignerSource() SignerSource {
	switch {
	case c.PrivateKey != "":
		return SignerSource_PrivateKey
	case c.KeystorePath != "":
		return SignerSource_Keystore
	case c.AWSKMSKeyID != "":
		return SignerSource_AWSKMS
	default:
		return SignerSource_None
	}
}

// ResolvedRelayerUrl returns the configured relay service or the chain default.
func (c *RelayConfig) ResolvedRelayerUrl() string {
	if c.RelayerUrl != "" {
		return c.RelayerUrl
	}
	return GetDefaultRelayerUrl(c.ChainID)
}

func (c *RelayConfig) KeyManagerAddress() common.Address {
	return common.HexToAddress(c.KeyManager)
}

// Validate validates the relay configuration and fills ChainName for known chains.
func (c *RelayConfig) Validate() error {
	var allErrors field.ErrorList

	if c.RpcUrl == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required"))
	}

	if c.KeyManager == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("keyManager"), "keyManager is required"))
	} else if !common.IsHexAddress(c.KeyManager) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("keyManager"), c.KeyManager, "must be a hex address"))
	}

	if c.ChainID != 0 {
		if name, ok := ChainIdToName[c.ChainID]; ok {
			c.ChainName = name
		}
	}

	sources := 0
	for _, set := range []bool{c.PrivateKey != "", c.KeystorePath != "", c.AWSKMSKeyID != ""} {
		if set {
			sources++
		}
	}
	signerPath := field.NewPath("signer")
	switch {
	case sources == 0:
		allErrors = append(allErrors, field.Required(signerPath, "one of privateKey, keystorePath or awsKmsKeyId is required"))
	case sources > 1:
		allErrors = append(allErrors, field.Forbidden(signerPath, "only one of privateKey, keystorePath or awsKmsKeyId may be set"))
	}

	if c.PrivateKey != "" {
		key := strings.TrimPrefix(c.PrivateKey, "0x")
		if len(key) != 64 { // 32 bytes
			allErrors = append(allErrors, field.Invalid(field.NewPath("privateKey"), "<redacted>",
				fmt.Sprintf("private key must be 32 bytes (64 hex chars), got %d chars", len(key))))
		}
	}

	if c.RelayerUrl != "" {
		u, err := url.Parse(c.RelayerUrl)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			allErrors = append(allErrors, field.Invalid(field.NewPath("relayerUrl"), c.RelayerUrl, "must be an http(s) URL"))
		}
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
