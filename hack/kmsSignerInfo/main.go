package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lsp-relay/lsp-relay-go/internal/aws"
	"github.com/lsp-relay/lsp-relay-go/pkg/logger"
	"github.com/lsp-relay/lsp-relay-go/pkg/relaySigner"
)

// Prints the controller address behind an AWS KMS key and checks it can sign relay digests.
func main() {
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	ctx := context.Background()

	keyId := os.Getenv("KEY_ID")
	if keyId == "" {
		l.Sugar().Fatal("KEY_ID environment variable is not set")
	}

	awsCfg, err := aws.LoadAWSConfig(ctx, os.Getenv("AWS_REGION"))
	if err != nil {
		l.Sugar().Fatalw("failed to load AWS config", "error", err)
	}

	signer, err := relaySigner.NewAWSKMSRelaySignerFromConfig(ctx, awsCfg, keyId, l)
	if err != nil {
		l.Sugar().Fatalw("failed to create KMS signer", "error", err)
	}

	digest := crypto.Keccak256Hash([]byte("lsp-relay kms check"))
	sig, err := signer.SignDigest(ctx, digest)
	if err != nil {
		l.Sugar().Fatalw("failed to sign test digest", "error", err)
	}
	if err := relaySigner.Verify(digest, sig, signer.Address()); err != nil {
		l.Sugar().Fatalw("signature does not recover to the key's address", "error", err)
	}

	fmt.Printf("Key:     %s\n", keyId)
	fmt.Printf("Address: %s\n", signer.Address().Hex())
	fmt.Println("✅ signature recovers to address")
}
