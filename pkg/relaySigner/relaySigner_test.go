package relaySigner

import (
	"context"
	"crypto/ecdsa"
	"encoding/asn1"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayMessage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/sha3"
)

var testKeyManager = common.HexToAddress("0xcafecafecafecafecafecafecafecafecafecafe")

func TestComputeDigest_KnownVector(t *testing.T) {
	msg := relayMessage.BuildCanonicalMessage(
		uint256.NewInt(relayMessage.Version),
		uint256.NewInt(42),
		uint256.NewInt(0),
		uint256.NewInt(0),
		uint256.NewInt(0),
		nil,
	)
	digest := ComputeDigest(testKeyManager, msg)
	assert.Equal(t, "0xdd8cb9ed0131b6ea93682b7742860167cffbc22fd2a2876f515509041b8289a9", digest.Hex())
}

func TestComputeDigest_MatchesIndependentKeccak(t *testing.T) {
	messages := [][]byte{
		{},
		{0x01},
		common.FromHex("0x44c028fe0000000000000000000000000000000000000000000000000000000000000000"),
		make([]byte, 1024),
	}
	for _, m := range messages {
		h := sha3.NewLegacyKeccak256()
		h.Write([]byte{0x19, 0x00})
		h.Write(testKeyManager.Bytes())
		h.Write(m)
		assert.Equal(t, h.Sum(nil), ComputeDigest(testKeyManager, m).Bytes())
	}
}

func TestComputeDigest_DivergesFromPersonalSign(t *testing.T) {
	validators := []common.Address{
		testKeyManager,
		common.HexToAddress("0x0000000000000000000000000000000000000001"),
	}
	messages := [][]byte{
		[]byte("hello"),
		relayMessage.BuildCanonicalMessage(uint256.NewInt(25), uint256.NewInt(4201), uint256.NewInt(1), nil, nil, []byte{0xde, 0xad}),
	}
	for _, v := range validators {
		for _, m := range messages {
			digest := ComputeDigest(v, m)
			assert.NotEqual(t, accounts.TextHash(m), digest.Bytes())

			withValidator := append(append([]byte{}, v.Bytes()...), m...)
			assert.NotEqual(t, accounts.TextHash(withValidator), digest.Bytes())
			assert.NotEqual(t, crypto.Keccak256(m), digest.Bytes())
		}
	}
}

func TestSignRecover_RoundTrip(t *testing.T) {
	for i := 0; i < 10; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		expected := crypto.PubkeyToAddress(key.PublicKey)

		message := []byte{byte(i), 0xaa, 0xbb}
		digest := ComputeDigest(testKeyManager, message)

		sig, err := Sign(key, digest)
		require.NoError(t, err)
		require.Len(t, sig, SignatureLength)
		assert.Contains(t, []byte{27, 28}, sig[64])

		recovered, err := Recover(digest, sig)
		require.NoError(t, err)
		assert.Equal(t, expected, recovered)

		// raw 0/1 recovery ids are accepted as well
		raw := append([]byte{}, sig...)
		raw[64] -= 27
		recovered, err = Recover(digest, raw)
		require.NoError(t, err)
		assert.Equal(t, expected, recovered)

		require.NoError(t, Verify(digest, sig, expected))
	}
}

func TestVerify_Mismatch(t *testing.T) {
	key, _ := crypto.GenerateKey()
	other, _ := crypto.GenerateKey()
	digest := ComputeDigest(testKeyManager, []byte("payload"))
	sig, err := Sign(key, digest)
	require.NoError(t, err)

	err = Verify(digest, sig, crypto.PubkeyToAddress(other.PublicKey))
	require.Error(t, err)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidSignature))

	otherDigest := ComputeDigest(testKeyManager, []byte("other payload"))
	err = Verify(otherDigest, sig, crypto.PubkeyToAddress(key.PublicKey))
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidSignature))
}

func TestRecover_InvalidInput(t *testing.T) {
	digest := ComputeDigest(testKeyManager, nil)

	_, err := Recover(digest, make([]byte, 64))
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))

	sig := make([]byte, 65)
	sig[64] = 5
	_, err = Recover(digest, sig)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidSignature))
}

func TestSignRelayMessage(t *testing.T) {
	l := zaptest.NewLogger(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer, err := NewInMemoryRelaySigner(key, l)
	require.NoError(t, err)

	msg := relayMessage.NewMessage(uint256.NewInt(4201), uint256.NewInt(3), relayMessage.Indefinite(), uint256.NewInt(0), []byte{0x01, 0x02})
	signed, err := SignRelayMessage(context.Background(), signer, testKeyManager, msg)
	require.NoError(t, err)

	assert.Equal(t, signer.Address(), signed.Signer)
	assert.Equal(t, ComputeDigest(testKeyManager, signed.Encoded), signed.Digest)
	require.NoError(t, signed.Verify())

	// binding to the key manager address is part of the digest
	assert.Error(t, Verify(ComputeDigest(common.HexToAddress("0x01"), signed.Encoded), signed.Signature, signer.Address()))

	_, err = SignRelayMessage(context.Background(), signer, common.Address{}, msg)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))

	_, err = SignRelayMessage(context.Background(), signer, testKeyManager, &relayMessage.Message{})
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

func TestNewPrivateKeyRelaySigner(t *testing.T) {
	l := zaptest.NewLogger(t)
	key, _ := crypto.GenerateKey()
	hexKey := common.Bytes2Hex(crypto.FromECDSA(key))

	for _, input := range []string{hexKey, "0x" + hexKey} {
		signer, err := NewPrivateKeyRelaySigner(input, l)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer.Address())
	}

	_, err := NewPrivateKeyRelaySigner("0x1234", l)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

func TestKeystoreRelaySigner(t *testing.T) {
	l := zaptest.NewLogger(t)
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	keyJson, err := keystore.EncryptKey(key, "correct horse", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "controller.json")
	require.NoError(t, os.WriteFile(path, keyJson, 0600))

	signer, err := NewKeystoreRelaySigner(path, "correct horse", l)
	require.NoError(t, err)
	assert.Equal(t, key.Address, signer.Address())

	_, err = NewKeystoreRelaySigner(path, "battery staple", l)
	require.Error(t, err)
	assert.True(t, relayErrors.IsKind(err, relayErrors.KeyDecryptFailed))

	_, err = NewKeystoreJsonRelaySigner([]byte(`{"version":3}`), "x", l)
	assert.True(t, relayErrors.IsKind(err, relayErrors.KeyDecryptFailed))

	_, err = NewKeystoreRelaySigner(filepath.Join(t.TempDir(), "missing.json"), "x", l)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

type fakeKMS struct {
	key      *ecdsa.PrivateKey
	highS    bool
	signErr  error
	lastSign *kms.SignInput
}

func (f *fakeKMS) GetPublicKey(_ context.Context, _ *kms.GetPublicKeyInput, _ ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error) {
	pub := crypto.FromECDSAPub(&f.key.PublicKey)
	der, err := asn1.Marshal(asn1EcPublicKey{
		EcPublicKeyInfo: asn1EcPublicKeyInfo{
			Algorithm:  asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1},
			Parameters: asn1.ObjectIdentifier{1, 3, 132, 0, 10},
		},
		PublicKey: asn1.BitString{Bytes: pub, BitLength: len(pub) * 8},
	})
	if err != nil {
		return nil, err
	}
	return &kms.GetPublicKeyOutput{PublicKey: der}, nil
}

func (f *fakeKMS) Sign(_ context.Context, params *kms.SignInput, _ ...func(*kms.Options)) (*kms.SignOutput, error) {
	f.lastSign = params
	if f.signErr != nil {
		return nil, f.signErr
	}
	sig, err := crypto.Sign(params.Message, f.key)
	if err != nil {
		return nil, err
	}
	r := new(big.Int).SetBytes(sig[0:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if f.highS {
		s = new(big.Int).Sub(secp256k1N, s)
	}
	der, err := asn1.Marshal(struct {
		R *big.Int
		S *big.Int
	}{r, s})
	if err != nil {
		return nil, err
	}
	return &kms.SignOutput{Signature: der}, nil
}

func TestAWSKMSRelaySigner(t *testing.T) {
	for _, highS := range []bool{false, true} {
		l := zaptest.NewLogger(t)
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		client := &fakeKMS{key: key, highS: highS}

		signer, err := NewAWSKMSRelaySigner(context.Background(), client, "alias/controller", l)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer.Address())

		for i := 0; i < 5; i++ {
			digest := ComputeDigest(testKeyManager, []byte{byte(i)})
			sig, err := signer.SignDigest(context.Background(), digest)
			require.NoError(t, err)
			assert.Contains(t, []byte{27, 28}, sig[64])

			s := new(big.Int).SetBytes(sig[32:64])
			assert.LessOrEqual(t, s.Cmp(secp256k1HalfN), 0)
			require.NoError(t, Verify(digest, sig, signer.Address()))
			assert.Equal(t, digest.Bytes(), client.lastSign.Message)
		}
	}
}

func TestAWSKMSRelaySigner_SignError(t *testing.T) {
	key, _ := crypto.GenerateKey()
	client := &fakeKMS{key: key, signErr: assert.AnError}
	signer, err := NewAWSKMSRelaySigner(context.Background(), client, "key", zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = signer.SignDigest(context.Background(), common.Hash{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
