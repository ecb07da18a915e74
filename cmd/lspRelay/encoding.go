package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/lsp-relay/lsp-relay-go/pkg/permissions"
	"github.com/lsp-relay/lsp-relay-go/pkg/scope"
	"github.com/urfave/cli/v2"
)

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func permissionsEncodeCommand(c *cli.Context) error {
	mask, err := permissions.CombineNames(c.StringSlice("name")...)
	if err != nil {
		return err
	}
	fmt.Println(mask.Hex())
	return nil
}

func permissionsDecodeCommand(c *cli.Context) error {
	mask, err := permissions.ParseBitmask(c.String("mask"))
	if err != nil {
		return err
	}
	if c.Bool("strict") {
		if _, err := permissions.DecodeStrict(mask); err != nil {
			return err
		}
	}
	for _, name := range permissions.DecodeNames(mask) {
		fmt.Println(name)
	}
	if unknown := permissions.UnknownBits(mask); !unknown.IsZero() {
		fmt.Printf("⚠️  unrecognized bits: %s\n", unknown.Hex())
	}
	return nil
}

func permissionsCheckCommand(c *cli.Context) error {
	mask, err := permissions.ParseBitmask(c.String("mask"))
	if err != nil {
		return err
	}
	report := permissions.ClassifyRisk(mask)
	if err := printJSON(report); err != nil {
		return err
	}
	if !report.Valid {
		return cli.Exit("bitmask contains risky permissions: "+strings.Join(report.Risks, "; "), 2)
	}
	return nil
}

func allowedCallsFromFlags(c *cli.Context, prefix string) (*scope.AllowedCallsConfig, error) {
	return scope.ParseAllowedCallsInput(scope.AllowedCallsInput{
		CallTypes:         c.StringSlice(prefix + "call-type"),
		Addresses:         c.StringSlice(prefix + "address"),
		InterfaceIds:      c.StringSlice(prefix + "interface-id"),
		FunctionSelectors: c.StringSlice(prefix + "selector"),
	})
}

func allowedCallsEncodeCommand(c *cli.Context) error {
	cfg, err := allowedCallsFromFlags(c, "")
	if err != nil {
		return err
	}
	encoded, err := scope.EncodeAllowedCalls(cfg)
	if err != nil {
		return err
	}
	fmt.Println(hexutil.Encode(encoded))
	return nil
}

func allowedCallsDecodeCommand(c *cli.Context) error {
	data, err := hexutil.Decode(c.String("data"))
	if err != nil {
		return fmt.Errorf("failed to decode hex data: %w", err)
	}
	calls, err := scope.DecodeAllowedCalls(data)
	if err != nil {
		return err
	}
	for _, call := range calls {
		fmt.Println(call.String())
	}
	return nil
}

func dataKeyPrefixes(values []string) ([][]byte, error) {
	prefixes := make([][]byte, 0, len(values))
	for _, v := range values {
		p, err := scope.ParseDataKeyPrefix(v)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, p)
	}
	return prefixes, nil
}

func allowedDataKeysEncodeCommand(c *cli.Context) error {
	prefixes, err := dataKeyPrefixes(c.StringSlice("prefix"))
	if err != nil {
		return err
	}
	encoded, err := scope.EncodeAllowedDataKeys(prefixes)
	if err != nil {
		return err
	}
	fmt.Println(hexutil.Encode(encoded))
	return nil
}
