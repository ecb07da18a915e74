package main

import (
	"log"
	"os"

	"github.com/lsp-relay/lsp-relay-go/pkg/config"
	"github.com/urfave/cli/v2"
)

var chainFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "rpc-url",
		Usage:   "Chain RPC URL",
		Value:   "http://localhost:8545",
		EnvVars: []string{config.EnvRPCURL},
	},
	&cli.UintFlag{
		Name:    "chain-id",
		Usage:   "Chain ID, checked against the RPC endpoint (" + config.GetSupportedChainIDsString() + "); 0 reads it from the node",
		EnvVars: []string{config.EnvChainID},
	},
	&cli.StringFlag{
		Name:    "key-manager",
		Usage:   "LSP6 Key Manager address of the profile",
		EnvVars: []string{config.EnvKeyManager},
	},
	&cli.StringFlag{
		Name:    "private-key",
		Usage:   "Controller private key (hex)",
		EnvVars: []string{config.EnvPrivateKey},
	},
	&cli.StringFlag{
		Name:    "keystore-path",
		Usage:   "Controller keystore file",
		EnvVars: []string{config.EnvKeystorePath},
	},
	&cli.StringFlag{
		Name:    "keystore-password",
		Usage:   "Password for --keystore-path",
		EnvVars: []string{config.EnvKeystorePassword},
	},
	&cli.StringFlag{
		Name:    "aws-kms-key-id",
		Usage:   "AWS KMS key id (ECC_SECG_P256K1) holding the controller key",
		EnvVars: []string{config.EnvAWSKMSKeyID},
	},
	&cli.StringFlag{
		Name:    "aws-region",
		Usage:   "AWS region override for KMS",
		EnvVars: []string{config.EnvAWSRegion},
	},
	&cli.StringFlag{
		Name:    "relayer-url",
		Usage:   "Relay service base URL; defaults to the chain's public relayer when one is known",
		EnvVars: []string{config.EnvRelayerURL},
	},
	&cli.StringFlag{
		Name:    "redis-address",
		Usage:   "Redis address for cross-process channel locking; in-process locking when empty",
		EnvVars: []string{config.EnvRedisAddress},
	},
}

var channelFlag = &cli.StringFlag{
	Name:  "channel-id",
	Usage: "Nonce channel (decimal or 0x hex); 0 is the sequential default",
	Value: "0",
}

var validityFlags = []cli.Flag{
	&cli.Int64Flag{
		Name:  "valid-from",
		Usage: "Seconds from now until the message becomes valid",
	},
	&cli.Int64Flag{
		Name:  "valid-for",
		Usage: "Seconds the message stays valid after --valid-from; 0 means no validity window",
	},
}

var payloadFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "payload",
		Usage: "Raw calldata for the profile (hex); overrides --target",
	},
	&cli.StringFlag{
		Name:  "target",
		Usage: "Target of a profile execute() call",
	},
	&cli.StringFlag{
		Name:  "operation",
		Usage: "execute() operation: call, create, create2, staticcall, delegatecall",
		Value: "call",
	},
	&cli.StringFlag{
		Name:  "call-value",
		Usage: "Value (wei, decimal) forwarded by the profile in execute()",
		Value: "0",
	},
	&cli.StringFlag{
		Name:  "call-data",
		Usage: "Calldata (hex) the profile sends to --target",
	},
	&cli.StringFlag{
		Name:  "value",
		Usage: "Value (wei, decimal) sent to the key manager with the relay call",
		Value: "0",
	},
}

var submitFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "direct",
		Usage: "Submit from the controller's own account instead of the relay service",
	},
	&cli.BoolFlag{
		Name:    "fallback-direct",
		Usage:   "Resubmit directly when the relay service rejects the call",
		EnvVars: []string{config.EnvFallbackDirect},
	},
	&cli.BoolFlag{
		Name:  "simulate",
		Usage: "Simulate a direct submission first to capture return data",
	},
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func main() {
	app := &cli.App{
		Name:  "lsp-relay",
		Usage: "Encode LSP6 permissions and sign, relay or submit LSP25 relay calls",
		Description: `A client for controllers of LSP0 profiles guarded by an LSP6 Key Manager.

This client can:
- Encode and decode permission bitmasks, allowed calls and allowed data keys
- Read channel nonces and sign LSP25 relay messages
- Submit signed messages through a relay service or directly
- Authorize new controllers on a profile`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "permissions",
				Usage: "Work with LSP6 permission bitmasks",
				Subcommands: []*cli.Command{
					{
						Name:  "encode",
						Usage: "Combine permission names into a bitmask",
						Flags: []cli.Flag{
							&cli.StringSliceFlag{
								Name:     "name",
								Usage:    "Permission name, e.g. CALL (repeatable)",
								Required: true,
							},
						},
						Action: permissionsEncodeCommand,
					},
					{
						Name:  "decode",
						Usage: "List the permissions set in a bitmask",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "mask", Usage: "Bitmask (hex)", Required: true},
							&cli.BoolFlag{Name: "strict", Usage: "Fail on bits outside the known catalog"},
						},
						Action: permissionsDecodeCommand,
					},
					{
						Name:  "check",
						Usage: "Classify risky permissions in a bitmask",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "mask", Usage: "Bitmask (hex)", Required: true},
						},
						Action: permissionsCheckCommand,
					},
				},
			},
			{
				Name:  "allowed-calls",
				Usage: "Work with AllowedCalls restrictions",
				Subcommands: []*cli.Command{
					{
						Name:   "encode",
						Usage:  "Encode allowed calls as a CompactBytesArray",
						Flags:  allowedCallsFlags(""),
						Action: allowedCallsEncodeCommand,
					},
					{
						Name:  "decode",
						Usage: "Decode an AllowedCalls value",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "data", Usage: "Encoded value (hex)", Required: true},
						},
						Action: allowedCallsDecodeCommand,
					},
				},
			},
			{
				Name:  "allowed-data-keys",
				Usage: "Work with AllowedERC725YDataKeys restrictions",
				Subcommands: []*cli.Command{
					{
						Name:  "encode",
						Usage: "Encode data key prefixes as a CompactBytesArray",
						Flags: []cli.Flag{
							&cli.StringSliceFlag{Name: "prefix", Usage: "Data key prefix (hex, 1 to 32 bytes, repeatable)"},
						},
						Action: allowedDataKeysEncodeCommand,
					},
				},
			},
			{
				Name:  "nonce",
				Usage: "Read the controller's nonce on a channel",
				Flags: flags(chainFlags, []cli.Flag{
					channelFlag,
					&cli.StringFlag{Name: "signer", Usage: "Address to read the nonce for; defaults to the configured controller"},
				}),
				Action: nonceCommand,
			},
			{
				Name:   "sign",
				Usage:  "Fetch the nonce and sign a relay message without submitting it",
				Flags:  flags(chainFlags, []cli.Flag{channelFlag}, validityFlags, payloadFlags),
				Action: signCommand,
			},
			{
				Name:   "execute",
				Usage:  "Sign a relay message and submit it",
				Flags:  flags(chainFlags, []cli.Flag{channelFlag}, validityFlags, payloadFlags, submitFlags),
				Action: executeCommand,
			},
			{
				Name:  "authorize-controller",
				Usage: "Grant permissions to a controller on the profile",
				Flags: flags(chainFlags, []cli.Flag{
					channelFlag,
					&cli.StringFlag{Name: "controller", Usage: "Controller address to authorize", Required: true},
					&cli.StringSliceFlag{Name: "permission", Usage: "Permission name (repeatable)"},
					&cli.StringFlag{Name: "mask", Usage: "Permission bitmask (hex), instead of --permission"},
					&cli.StringSliceFlag{Name: "allowed-data-key", Usage: "Allowed data key prefix (hex, repeatable)"},
					&cli.BoolFlag{Name: "allow-risky", Usage: "Grant permissions classified as risky"},
				}, allowedCallsFlags("allowed-"), validityFlags, submitFlags),
				Action: authorizeControllerCommand,
			},
			{
				Name:   "controllers",
				Usage:  "List the profile's controllers and their permissions",
				Flags:  chainFlags,
				Action: controllersCommand,
			},
			{
				Name:  "quota",
				Usage: "Show the relay quota of the profile",
				Flags: flags(chainFlags, []cli.Flag{
					&cli.StringFlag{Name: "account", Usage: "Account to query; defaults to the key manager's target"},
				}),
				Action: quotaCommand,
			},
			{
				Name:  "history",
				Usage: "List PermissionsVerified events emitted for a signer",
				Flags: flags(chainFlags, []cli.Flag{
					&cli.StringFlag{Name: "signer", Usage: "Signer address; defaults to the configured controller"},
					&cli.Uint64Flag{Name: "from-block", Usage: "First block to search"},
					&cli.Uint64Flag{Name: "to-block", Usage: "Last block to search; latest when 0"},
				}),
				Action: historyCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func allowedCallsFlags(prefix string) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: prefix + "call-type", Usage: "Call type: VALUE, CALL, STATICCALL, DELEGATECALL or hex (repeatable)"},
		&cli.StringSliceFlag{Name: prefix + "address", Usage: "Allowed target address (repeatable); any when omitted"},
		&cli.StringSliceFlag{Name: prefix + "interface-id", Usage: "Allowed ERC165 interface id (repeatable); any when omitted"},
		&cli.StringSliceFlag{Name: prefix + "selector", Usage: "Allowed function selector (repeatable); any when omitted"},
	}
}
