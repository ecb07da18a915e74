package relaySigner

import (
	"bytes"
	"context"
	cryptoEcdsa "crypto/ecdsa"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// KMSClient is the subset of the AWS KMS API used for signing.
type KMSClient interface {
	GetPublicKey(ctx context.Context, params *kms.GetPublicKeyInput, optFns ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error)
	Sign(ctx context.Context, params *kms.SignInput, optFns ...func(*kms.Options)) (*kms.SignOutput, error)
}

var _ KMSClient = (*kms.Client)(nil)

var (
	secp256k1N     = crypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

type awsKmsRelaySigner struct {
	logger    *zap.Logger
	kmsClient KMSClient
	keyId     string
	publicKey *cryptoEcdsa.PublicKey
	address   common.Address
}

var _ IRelaySigner = (*awsKmsRelaySigner)(nil)

// NewAWSKMSRelaySignerFromConfig builds a KMS client from an AWS config.
func NewAWSKMSRelaySignerFromConfig(ctx context.Context, awsCfg aws.Config, keyId string, logger *zap.Logger) (IRelaySigner, error) {
	return NewAWSKMSRelaySigner(ctx, kms.NewFromConfig(awsCfg), keyId, logger)
}

// NewAWSKMSRelaySigner resolves the public key of an ECC_SECG_P256K1 key once and signs digests with it.
func NewAWSKMSRelaySigner(ctx context.Context, client KMSClient, keyId string, logger *zap.Logger) (IRelaySigner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	out, err := client.GetPublicKey(ctx, &kms.GetPublicKeyInput{KeyId: aws.String(keyId)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get public key for KMS key %s", keyId)
	}
	pub, err := parseECDSAPublicKey(out.PublicKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse public key for KMS key %s", keyId)
	}
	address := crypto.PubkeyToAddress(*pub)
	logger.Sugar().Infow("Loaded KMS relay signer",
		"keyId", keyId,
		"address", address.Hex(),
	)
	return &awsKmsRelaySigner{
		logger:    logger,
		kmsClient: client,
		keyId:     keyId,
		publicKey: pub,
		address:   address,
	}, nil
}

func (k *awsKmsRelaySigner) Address() common.Address {
	return k.address
}

func (k *awsKmsRelaySigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	signOutput, err := k.kmsClient.Sign(ctx, &kms.SignInput{
		KeyId:            aws.String(k.keyId),
		Message:          digest.Bytes(),
		SigningAlgorithm: types.SigningAlgorithmSpecEcdsaSha256,
		MessageType:      types.MessageTypeDigest,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign digest with KMS key %s", k.keyId)
	}

	var sigAsn1 asn1EcSig
	if _, err := asn1.Unmarshal(signOutput.Signature, &sigAsn1); err != nil {
		return nil, errors.Wrap(err, "failed to parse KMS signature")
	}

	r := new(big.Int).SetBytes(sigAsn1.R.Bytes)
	s := new(big.Int).SetBytes(sigAsn1.S.Bytes)
	// low-S form, required by ecrecover
	if s.Cmp(secp256k1HalfN) > 0 {
		s = new(big.Int).Sub(secp256k1N, s)
	}

	signature := make([]byte, SignatureLength)
	r.FillBytes(signature[0:32])
	s.FillBytes(signature[32:64])

	expected := crypto.FromECDSAPub(k.publicKey)
	for recoveryId := byte(0); recoveryId < 2; recoveryId++ {
		signature[crypto.RecoveryIDOffset] = recoveryId
		recovered, err := crypto.Ecrecover(digest.Bytes(), signature)
		if err != nil {
			k.logger.Debug("Ecrecover failed",
				zap.Uint8("recoveryId", recoveryId),
				zap.Error(err))
			continue
		}
		if bytes.Equal(recovered, expected) {
			signature[crypto.RecoveryIDOffset] = 27 + recoveryId
			return signature, nil
		}
	}
	return nil, fmt.Errorf("could not determine recovery id for KMS key %s", k.keyId)
}

type asn1EcSig struct {
	R asn1.RawValue
	S asn1.RawValue
}

type asn1EcPublicKey struct {
	EcPublicKeyInfo asn1EcPublicKeyInfo
	PublicKey       asn1.BitString
}

type asn1EcPublicKeyInfo struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

// parseECDSAPublicKey reads the DER SubjectPublicKeyInfo returned by KMS.
func parseECDSAPublicKey(derBytes []byte) (*cryptoEcdsa.PublicKey, error) {
	var pub asn1EcPublicKey
	if _, err := asn1.Unmarshal(derBytes, &pub); err != nil {
		return nil, fmt.Errorf("failed to parse ASN.1 public key: %w", err)
	}
	return crypto.UnmarshalPubkey(pub.PublicKey.Bytes)
}
